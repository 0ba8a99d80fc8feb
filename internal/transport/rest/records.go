package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"carepulse/internal/domain"
	"carepulse/internal/form"
)

// @Summary Get a user
// @Description Used by the registration page to prefill name, email and phone
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} domain.User
// @Failure 404 {object} errorResponseBody
// @Router /users/{id} [get]
func (h *Handler) getUserByID(c *gin.Context) {
	user, err := h.services.User.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err, "user not found")
		return
	}
	successResponse(c, http.StatusOK, user)
}

// @Summary Get the patient of a user
// @Description The identification document is only reachable through the admin routes
// @Tags Patients
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} domain.Patient
// @Failure 404 {object} errorResponseBody
// @Router /patients/{userId} [get]
func (h *Handler) getPatientByUserID(c *gin.Context) {
	patient, err := h.services.Patient.GetPatientByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		domainErrorResponse(c, err, "patient not found")
		return
	}
	patient.IdentificationDocumentID = ""
	patient.IdentificationDocumentURL = ""
	successResponse(c, http.StatusOK, patient)
}

// @Summary Download the identification document of a patient
// @Tags Admin
// @Security ApiKeyAuth
// @Produce octet-stream
// @Param userId path string true "User ID"
// @Success 200 {file} file
// @Failure 401 {object} errorResponseBody
// @Failure 404 {object} errorResponseBody
// @Router /admin/patients/{userId}/identification-document [get]
func (h *Handler) getIdentificationDocument(c *gin.Context) {
	doc, err := h.services.Patient.GetIdentificationDocument(c.Request.Context(), c.Param("userId"))
	if err != nil {
		domainErrorResponse(c, err, "identification document not found")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.FileName))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

type appointmentResponse struct {
	Appointment *domain.Appointment `json:"appointment"`
	Doctor      *form.Doctor        `json:"doctor,omitempty"`
}

// @Summary Get an appointment
// @Description Appointment with the doctor details shown on the success page
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} appointmentResponse
// @Failure 404 {object} errorResponseBody
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	appointment, err := h.services.Appointment.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err, "appointment not found")
		return
	}

	resp := appointmentResponse{Appointment: appointment}
	if doctor, ok := h.registry.Doctor(appointment.PrimaryPhysician); ok {
		resp.Doctor = &doctor
	}
	successResponse(c, http.StatusOK, resp)
}
