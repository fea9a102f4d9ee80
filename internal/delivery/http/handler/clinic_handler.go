package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/usecase"
	"patient-booking/pkg/response"
	"patient-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type ClinicHandler struct {
	clinicUsecase usecase.ClinicUsecase
	validator     *validator.CustomValidator
}

func NewClinicHandler(clinicUsecase usecase.ClinicUsecase, validator *validator.CustomValidator) *ClinicHandler {
	return &ClinicHandler{
		clinicUsecase: clinicUsecase,
		validator:     validator,
	}
}

func (h *ClinicHandler) CreateClinic(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	clinic, err := h.clinicUsecase.CreateClinic(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create clinic")
		return
	}

	response.Success(w, http.StatusCreated, "Clinic created successfully", clinic)
}

func (h *ClinicHandler) GetClinic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return
	}

	clinic, err := h.clinicUsecase.GetClinic(r.Context(), clinicID)
	if err != nil {
		if err == usecase.ErrClinicNotFound {
			response.NotFound(w, "Clinic not found")
			return
		}
		response.InternalServerError(w, "Failed to get clinic")
		return
	}

	response.Success(w, http.StatusOK, "Clinic retrieved successfully", clinic)
}

func (h *ClinicHandler) GetAllClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.clinicUsecase.GetAllClinics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get clinics")
		return
	}

	response.Success(w, http.StatusOK, "Clinics retrieved successfully", clinics)
}
