package handlers

import (
	"hams-server/internal/reference"
	"hams-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves the read-only reference tables.
type DirectoryHandler struct {
	Dir *reference.Directory
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(dir *reference.Directory) *DirectoryHandler {
	return &DirectoryHandler{Dir: dir}
}

// GetDoctors handles fetching all doctors. Accessible by all authenticated users.
func (h *DirectoryHandler) GetDoctors(c *gin.Context) {
	utils.Success(c, "Doctors fetched successfully", h.Dir.Doctors())
}

// GetDepartments handles fetching all departments.
func (h *DirectoryHandler) GetDepartments(c *gin.Context) {
	utils.Success(c, "Departments fetched successfully", h.Dir.Departments())
}

// GetPatients handles searching patients by name, email, phone or blood group.
func (h *DirectoryHandler) GetPatients(c *gin.Context) {
	utils.Success(c, "Patients fetched successfully", h.Dir.Patients(c.Query("search")))
}
