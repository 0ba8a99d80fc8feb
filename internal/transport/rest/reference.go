package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carepulse/internal/form"
)

// @Summary List doctors
// @Description Doctors selectable as primary physician
// @Tags Reference
// @Produce json
// @Success 200 {array} form.Doctor
// @Router /reference/doctors [get]
func (h *Handler) getDoctors(c *gin.Context) {
	successResponse(c, http.StatusOK, h.registry.Doctors())
}

// @Summary List identification types
// @Tags Reference
// @Produce json
// @Success 200 {array} form.Option
// @Router /reference/identification-types [get]
func (h *Handler) getIdentificationTypes(c *gin.Context) {
	h.optionList(c, form.ListIdentificationTypes)
}

// @Summary List genders
// @Tags Reference
// @Produce json
// @Success 200 {array} form.Option
// @Router /reference/genders [get]
func (h *Handler) getGenders(c *gin.Context) {
	h.optionList(c, form.ListGenders)
}

func (h *Handler) optionList(c *gin.Context, list string) {
	options, err := h.registry.Options(list)
	if err != nil {
		c.Error(err)
		internalServerErrorResponse(c)
		return
	}
	successResponse(c, http.StatusOK, options)
}
