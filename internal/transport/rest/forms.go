package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carepulse/internal/controller"
	"carepulse/internal/domain"
	"carepulse/internal/form"
	"carepulse/internal/storage"
)

const documentField = "identificationDocument"

type createFormRequest struct {
	Form          string `json:"form" binding:"required,oneof=patient appointment"`
	Mode          string `json:"mode" binding:"required"`
	UserID        string `json:"userId"`
	PatientID     string `json:"patientId"`
	AppointmentID string `json:"appointmentId"`
}

type formSessionResponse struct {
	ID       string               `json:"id"`
	Snapshot *controller.Snapshot `json:"snapshot"`
}

// Modes reachable without an admin token, and the ones that need it.
var scopeModes = map[controller.Scope]map[form.Mode]bool{
	controller.ScopePublic: {
		form.ModeQuickCreate:      true,
		form.ModeFullRegistration: true,
		form.ModeCreate:           true,
	},
	controller.ScopeAdmin: {
		form.ModeSchedule: true,
		form.ModeCancel:   true,
	},
}

// @Summary Open a form
// @Description Creates a form instance for one mode. Full registration is prefilled from the user, a new appointment always resolves the patient of the user.
// @Tags Forms
// @Accept json
// @Produce json
// @Param input body createFormRequest true "Form and mode"
// @Success 201 {object} formSessionResponse
// @Failure 400 {object} errorResponseBody
// @Failure 404 {object} errorResponseBody
// @Router /forms/sessions [post]
func (h *Handler) createFormSession(scope controller.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createFormRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("invalid form request", zap.Error(err))
			badRequestResponse(c, "invalid request body")
			return
		}

		mode, err := form.ParseMode(form.Form(req.Form), req.Mode)
		if err != nil || !scopeModes[scope][mode] {
			badRequestResponse(c, fmt.Sprintf("mode %q is not available here", req.Mode))
			return
		}

		opts := controller.Options{Form: form.Form(req.Form), Mode: mode, UserID: req.UserID, PatientID: req.PatientID}
		ctx := c.Request.Context()

		var prefill map[string]any
		switch mode {
		case form.ModeFullRegistration:
			user, err := h.services.User.GetUser(ctx, req.UserID)
			if err != nil {
				domainErrorResponse(c, err, "user not found")
				return
			}
			prefill = map[string]any{"name": user.Name, "email": user.Email, "phone": user.Phone}
		case form.ModeCreate:
			patient, err := h.services.Patient.GetPatientByUserID(ctx, req.UserID)
			if err != nil {
				domainErrorResponse(c, err, "patient not found")
				return
			}
			if req.PatientID != "" && req.PatientID != patient.ID {
				badRequestResponse(c, "patient does not belong to the user")
				return
			}
			opts.PatientID = patient.ID
		case form.ModeSchedule, form.ModeCancel:
			appointment, err := h.services.Appointment.GetAppointment(ctx, req.AppointmentID)
			if err != nil {
				domainErrorResponse(c, err, "appointment not found")
				return
			}
			opts.Existing = appointment
		}

		ctrl, err := controller.New(opts, h.controllerDeps())
		if err != nil {
			if errors.Is(err, controller.ErrMissingContext) || errors.Is(err, form.ErrUnknownMode) {
				badRequestResponse(c, err.Error())
				return
			}
			c.Error(err)
			internalServerErrorResponse(c)
			return
		}

		if len(prefill) > 0 {
			if err := ctrl.EditMany(prefill); err != nil {
				h.logger.Warn("prefill rejected", zap.Error(err))
			}
		}

		id := h.sessions.Add(ctrl, scope)
		h.respondSnapshot(c, http.StatusCreated, id, ctrl)
	}
}

func (h *Handler) controllerDeps() controller.Deps {
	return controller.Deps{
		Registry:     h.registry,
		Validator:    h.validator,
		Users:        h.services.User,
		Patients:     h.services.Patient,
		Appointments: h.services.Appointment,
		Logger:       h.logger,
	}
}

// @Summary Get a form
// @Tags Forms
// @Produce json
// @Param id path string true "Form session ID"
// @Success 200 {object} formSessionResponse
// @Failure 404 {object} errorResponseBody
// @Router /forms/sessions/{id} [get]
func (h *Handler) getFormSession(scope controller.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := h.session(c, scope)
		if !ok {
			return
		}
		h.respondSnapshot(c, http.StatusOK, c.Param("id"), ctrl)
	}
}

// @Summary Edit form values
// @Description Sets field values. Valid values are applied even when others are rejected.
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "Form session ID"
// @Param input body map[string]interface{} true "Field values by name"
// @Success 200 {object} formSessionResponse
// @Failure 409 {object} errorResponseBody
// @Failure 422 {object} fieldErrorResponseBody
// @Router /forms/sessions/{id}/values [patch]
func (h *Handler) editFormValues(scope controller.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := h.session(c, scope)
		if !ok {
			return
		}

		var values map[string]any
		if err := c.ShouldBindJSON(&values); err != nil {
			badRequestResponse(c, "expected an object of field values")
			return
		}
		if values[documentField] != nil {
			fieldErrorsResponse(c, form.FieldErrors{documentField: "Upload the document as a file."})
			return
		}

		if err := ctrl.EditMany(values); err != nil {
			h.controllerErrorResponse(c, ctrl, err)
			return
		}
		h.respondSnapshot(c, http.StatusOK, c.Param("id"), ctrl)
	}
}

// @Summary Attach the identification document
// @Tags Forms
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Form session ID"
// @Param file formData file true "Scanned identification document (image or PDF)"
// @Success 200 {object} formSessionResponse
// @Failure 400 {object} errorResponseBody
// @Failure 422 {object} fieldErrorResponseBody
// @Router /forms/sessions/{id}/document [post]
func (h *Handler) attachDocument(scope controller.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := h.session(c, scope)
		if !ok {
			return
		}

		limit := int64(h.config.HTTP.MaxUploadMB) << 20
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		fileHeader, err := c.FormFile("file")
		if err != nil {
			badRequestResponse(c, "file is required")
			return
		}
		if fileHeader.Size > limit {
			badRequestResponse(c, fmt.Sprintf("file exceeds %d MB", h.config.HTTP.MaxUploadMB))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			badRequestResponse(c, "could not read file")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			badRequestResponse(c, "could not read file")
			return
		}

		contentType, _, err := storage.DetectDocument(data, fileHeader.Filename)
		if err != nil {
			fieldErrorsResponse(c, form.FieldErrors{documentField: "The document must be an image or a PDF."})
			return
		}

		attachment := domain.NewAttachment(fileHeader.Filename, contentType, data)
		if err := ctrl.Edit(documentField, attachment); err != nil {
			h.controllerErrorResponse(c, ctrl, err)
			return
		}
		h.respondSnapshot(c, http.StatusOK, c.Param("id"), ctrl)
	}
}

type submitResponse struct {
	ID         string                `json:"id"`
	Navigation controller.Navigation `json:"navigation"`
	Record     interface{}           `json:"record"`
}

// @Summary Submit a form
// @Description Validates and submits. Invalid values are reported per field and never reach the store.
// @Tags Forms
// @Produce json
// @Param id path string true "Form session ID"
// @Success 200 {object} submitResponse
// @Failure 409 {object} errorResponseBody "Already submitting or submitted"
// @Failure 422 {object} fieldErrorResponseBody
// @Failure 502 {object} errorResponseBody "The store rejected the submission"
// @Router /forms/sessions/{id}/submit [post]
func (h *Handler) submitForm(scope controller.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := h.session(c, scope)
		if !ok {
			return
		}

		result, err := ctrl.Submit(c.Request.Context())
		if err != nil {
			h.controllerErrorResponse(c, ctrl, err)
			return
		}

		successResponse(c, http.StatusOK, submitResponse{
			ID:         c.Param("id"),
			Navigation: result.Navigation,
			Record:     result.Record,
		})
	}
}

// @Summary Abandon a form
// @Tags Forms
// @Param id path string true "Form session ID"
// @Success 204
// @Failure 404 {object} errorResponseBody
// @Router /forms/sessions/{id} [delete]
func (h *Handler) deleteFormSession(scope controller.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.sessions.Remove(c.Param("id"), scope) {
			notFoundResponse(c, "form not found")
			return
		}
		noContentResponse(c)
	}
}

func (h *Handler) session(c *gin.Context, scope controller.Scope) (*controller.Controller, bool) {
	ctrl, err := h.sessions.Get(c.Param("id"), scope)
	if err != nil {
		notFoundResponse(c, "form not found")
		return nil, false
	}
	return ctrl, true
}

func (h *Handler) respondSnapshot(c *gin.Context, status int, id string, ctrl *controller.Controller) {
	snap, err := ctrl.Snapshot()
	if err != nil {
		c.Error(err)
		internalServerErrorResponse(c)
		return
	}
	successResponse(c, status, formSessionResponse{ID: id, Snapshot: snap})
}

func (h *Handler) controllerErrorResponse(c *gin.Context, ctrl *controller.Controller, err error) {
	var fieldErrs form.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		fieldErrorsResponse(c, fieldErrs)
	case errors.Is(err, controller.ErrSubmitInFlight):
		errorResponse(c, http.StatusConflict, "the form is being submitted")
	case errors.Is(err, controller.ErrClosed):
		errorResponse(c, http.StatusConflict, "the form has already been submitted")
	case errors.Is(err, controller.ErrSubmitFailed):
		errorResponse(c, http.StatusBadGateway, ctrl.Notification())
	default:
		c.Error(err)
		internalServerErrorResponse(c)
	}
}
