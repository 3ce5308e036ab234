package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"patient-records-api/internal/application/ports"
	domain "patient-records-api/internal/domain/patient"
	"patient-records-api/internal/interface/api/rest/dto"
	"patient-records-api/internal/interface/api/rest/dto/patient"
	"patient-records-api/internal/interface/api/rest/validator"
)

const problemContentType = "application/problem+json"

type PatientController struct {
	patientService ports.PatientService
	logger         *zap.Logger
}

func NewPatientController(
	r *gin.Engine,
	patientService ports.PatientService,
	logger *zap.Logger,
) *PatientController {
	pc := &PatientController{
		patientService: patientService,
		logger:         logger,
	}

	r.GET(RoutePatients, pc.GetPatientsHandler)
	// static segment wins over :patient_id in gin's tree
	r.GET(RoutePatientsCreatedAfter, pc.GetPatientsCreatedAfterHandler)
	r.GET(RoutePatient, pc.GetPatientHandler)
	r.POST(RoutePatients, pc.CreatePatientHandler)
	r.PUT(RoutePatient, pc.UpdatePatientHandler)
	r.PATCH(RoutePatient, pc.PatchPatientHandler)
	r.DELETE(RoutePatient, pc.DeletePatientHandler)

	return pc
}

// GetPatientsHandler godoc
// @Summary List patients
// @Description Paged list filtered by name (first or last, case-insensitive) and document number
// @Tags patients
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Param name query string false "Name contains"
// @Param documentNumber query string false "Document number contains"
// @Success 200 {object} dto.Envelope{data=patient.ListResult}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /patients [get]
func (pc *PatientController) GetPatientsHandler(c *gin.Context) {
	page, pageSize, err := validator.ValidatePagination(c.Query("page"), c.Query("pageSize"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	res, err := pc.patientService.FindPatients(c.Request.Context(), domain.ListFilter{
		Page:           page,
		PageSize:       pageSize,
		Name:           c.Query("name"),
		DocumentNumber: c.Query("documentNumber"),
	})
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get patients"},
		)
		pc.logger.Error("FindPatients() error", zap.Error(err))
		return
	}

	msg := "Patients retrieved successfully."
	if len(res.Items) == 0 {
		msg = "No patients found matching the criteria."
	}

	c.JSON(http.StatusOK, dto.OK(msg, patient.ToListResult(*res)))
}

// GetPatientHandler godoc
// @Summary Get a patient
// @Tags patients
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {object} dto.Envelope{data=patient.Patient}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.Envelope
// @Failure 500 {object} dto.ErrorResponse
// @Router /patients/{patient_id} [get]
func (pc *PatientController) GetPatientHandler(c *gin.Context) {
	id, err := validator.ParsePatientID(c.Param("patient_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	p, err := pc.patientService.FindPatientByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail(fmt.Sprintf("No patient found with ID %d.", id)))
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a patient"},
		)
		pc.logger.Error("FindPatientByID() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.OK("Patient retrieved successfully.", patient.ToResponsePatient(*p)))
}

// GetPatientsCreatedAfterHandler godoc
// @Summary List patients created after a date
// @Tags patients
// @Produce json
// @Param date query string false "RFC3339, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD"
// @Success 200 {object} dto.Envelope{data=[]patient.Patient}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /patients/createdAfter [get]
func (pc *PatientController) GetPatientsCreatedAfterHandler(c *gin.Context) {
	ts, err := validator.ParseCreatedAfter(c.Query("date"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	ps, err := pc.patientService.FindPatientsCreatedAfter(c.Request.Context(), ts)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get patients"},
		)
		pc.logger.Error("FindPatientsCreatedAfter() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.OK(
		fmt.Sprintf("Patients created after %s.", ts.Format(time.RFC3339)),
		patient.ToResponsePatients(ps),
	))
}

// CreatePatientHandler godoc
// @Summary Create a patient
// @Tags patients
// @Accept json
// @Produce json
// @Param data body patient.Request true "Patient"
// @Success 201 {object} dto.Envelope{data=patient.Patient}
// @Header 201 {string} Location "/api/v1/patients/{id}"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {string} string
// @Failure 500 {object} dto.ErrorResponse
// @Router /patients [post]
func (pc *PatientController) CreatePatientHandler(c *gin.Context) {
	pDomain, ok := pc.bindPatient(c)
	if !ok {
		return
	}

	p, err := pc.patientService.CreatePatient(c.Request.Context(), pDomain)
	if err != nil {
		pc.writeMutationError(c, err, "failed to create a patient", "CreatePatient() error")
		return
	}

	c.Header("Location", RoutePatients+"/"+strconv.FormatInt(int64(p.ID), 10))
	c.JSON(http.StatusCreated, dto.OK("Patient created successfully.", patient.ToResponsePatient(*p)))
}

// UpdatePatientHandler godoc
// @Summary Replace a patient
// @Description Replaces every mutable field. id and createdAt never change.
// @Tags patients
// @Accept json
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Param data body patient.Request true "Patient"
// @Success 200 {object} dto.Envelope{data=patient.Patient}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404
// @Failure 409 {string} string
// @Failure 500 {object} dto.ErrorResponse
// @Router /patients/{patient_id} [put]
func (pc *PatientController) UpdatePatientHandler(c *gin.Context) {
	id, err := validator.ParsePatientID(c.Param("patient_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	pDomain, ok := pc.bindPatient(c)
	if !ok {
		return
	}
	pDomain.ID = id

	p, err := pc.patientService.UpdatePatient(c.Request.Context(), pDomain)
	if err != nil {
		pc.writeMutationError(c, err, "failed to update a patient", "UpdatePatient() error")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Patient updated successfully.", patient.ToResponsePatient(*p)))
}

// PatchPatientHandler godoc
// @Summary Partially update a patient
// @Description Applies a JSON Patch document. Only add, replace and remove on patient fields are accepted.
// @Tags patients
// @Accept json
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Param data body patient.PatchDocument true "JSON Patch"
// @Success 200 {object} dto.Envelope{data=patient.Patient}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404
// @Failure 409 {string} string
// @Failure 422 {object} dto.ProblemDetails
// @Failure 500 {object} dto.ErrorResponse
// @Router /patients/{patient_id} [patch]
func (pc *PatientController) PatchPatientHandler(c *gin.Context) {
	id, err := validator.ParsePatientID(c.Param("patient_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	var doc patient.PatchDocument
	if err = c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid patch document",
			"details": err.Error(),
		})
		return
	}
	if len(doc) == 0 {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "patch document is required"},
		)
		return
	}

	changes, err := patient.ToDomainChanges(doc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid patch document",
			"details": err.Error(),
		})
		return
	}

	p, err := pc.patientService.PatchPatient(c.Request.Context(), id, changes)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			pc.writeProblem(c, dto.ValidationProblem(http.StatusUnprocessableEntity, vErr.Fields))
			return
		}
		pc.writeMutationError(c, err, "failed to patch a patient", "PatchPatient() error")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Patient updated successfully.", patient.ToResponsePatient(*p)))
}

// DeletePatientHandler godoc
// @Summary Delete a patient
// @Tags patients
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.Envelope
// @Failure 500 {object} dto.ErrorResponse
// @Router /patients/{patient_id} [delete]
func (pc *PatientController) DeletePatientHandler(c *gin.Context) {
	id, err := validator.ParsePatientID(c.Param("patient_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	err = pc.patientService.DeletePatient(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail(fmt.Sprintf("No patient found with ID %d.", id)))
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete a patient"},
		)
		pc.logger.Error("DeletePatient() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("Patient with ID %d deleted successfully.", id), nil))
}

// bindPatient decodes and checks a create/replace body, answering 400 itself
// when it is unusable.
func (pc *PatientController) bindPatient(c *gin.Context) (domain.Patient, bool) {
	var req patient.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request body",
			Details: err.Error(),
		})
		return domain.Patient{}, false
	}
	if errs := validator.ValidatePatient(req); errs != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request body",
			Details: errs,
		})
		return domain.Patient{}, false
	}

	pDomain, err := patient.ToDomainPatient(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request body",
			Details: err.Error(),
		})
		return domain.Patient{}, false
	}

	return pDomain, true
}

func (pc *PatientController) writeMutationError(c *gin.Context, err error, public, logMsg string) {
	var vErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domain.ErrDuplicateDocument):
		c.String(http.StatusConflict, err.Error())
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request body",
			Details: vErr.Fields,
		})
	default:
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": public},
		)
		pc.logger.Error(logMsg, zap.Error(err))
	}
}

func (pc *PatientController) writeProblem(c *gin.Context, pd dto.ProblemDetails) {
	body, err := json.Marshal(pd)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to encode problem details"},
		)
		pc.logger.Error("json.Marshal() problem details error", zap.Error(err))
		return
	}

	c.Data(pd.Status, problemContentType, body)
}
