package handlers

import (
	"hams-server/internal/models"
	"hams-server/internal/reference"
	"hams-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// MedicalRecordHandler handles medical record related requests.
type MedicalRecordHandler struct {
	Dir *reference.Directory
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(dir *reference.Directory) *MedicalRecordHandler {
	return &MedicalRecordHandler{Dir: dir}
}

// GetMedicalRecords returns the records visible to the actor: a patient's
// own, a doctor's authored, or all of them for an admin. Newest visit first.
func (h *MedicalRecordHandler) GetMedicalRecords(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var records []models.MedicalRecord
	switch actor.Role {
	case models.RoleAdmin:
		records = h.Dir.MedicalRecords("", "")
	case models.RoleDoctor:
		if actor.DoctorID == "" {
			utils.Forbidden(c, "Account has no doctor profile")
			return
		}
		records = h.Dir.MedicalRecords("", actor.DoctorID)
	case models.RolePatient:
		if actor.PatientID == "" {
			utils.Forbidden(c, "Account has no patient profile")
			return
		}
		records = h.Dir.MedicalRecords(actor.PatientID, "")
	default:
		utils.Forbidden(c, "You do not have permission to access medical records")
		return
	}

	utils.Success(c, "Medical records fetched successfully", records)
}

// GetInvoices returns a patient's own invoices, or every invoice for an admin.
func (h *MedicalRecordHandler) GetInvoices(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	switch {
	case actor.Role == models.RoleAdmin:
		utils.Success(c, "Invoices fetched successfully", h.Dir.Invoices(""))
	case actor.Role == models.RolePatient && actor.PatientID != "":
		utils.Success(c, "Invoices fetched successfully", h.Dir.Invoices(actor.PatientID))
	default:
		utils.Forbidden(c, "You do not have permission to access invoices")
	}
}
