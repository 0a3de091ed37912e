package v1

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"job-tracker-backend/internal/delivery/http/middleware"
	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type JobHandler struct {
	jobUC    domain.JobUsecase
	authUC   domain.AuthUsecase
	exportUC domain.ExportUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase, authUC domain.AuthUsecase, exportUC domain.ExportUsecase) {
	handler := &JobHandler{jobUC: jobUC, authUC: authUC, exportUC: exportUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.POST("", handler.Create)
		jobs.GET("/stats", handler.Stats)
		jobs.GET("/export", handler.Export)
		jobs.POST("/export/archive", handler.Archive)
		jobs.GET("/:id", handler.GetDetails)
		jobs.PUT("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
	}
}

// JobRequest is the body of create and update. Dates are YYYY-MM-DD.
type JobRequest struct {
	Title      string `json:"title" binding:"required,not_blank,max=200"`
	Company    string `json:"company" binding:"required,not_blank,max=200"`
	Status     string `json:"status" binding:"omitempty,job_status"`
	Deadline   string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	AppliedOn  string `json:"applied_on" binding:"omitempty,datetime=2006-01-02"`
	Portal     string `json:"portal" binding:"omitempty,job_portal"`
	StatusLink string `json:"status_link" binding:"omitempty,url"`
}

func (r JobRequest) toJob() *domain.Job {
	job := &domain.Job{
		Title:     r.Title,
		Company:   r.Company,
		Status:    domain.Status(r.Status),
		Deadline:  parseDate(r.Deadline),
		AppliedOn: parseDate(r.AppliedOn),
	}
	if r.Portal != "" {
		p := domain.Portal(r.Portal)
		job.Portal = &p
	}
	if r.StatusLink != "" {
		link := r.StatusLink
		job.StatusLink = &link
	}
	return job
}

// parseDate expects an already validated date; empty gives nil.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// filterFromQuery reads q, status, portal and window. "All" is accepted
// for each enumerated predicate.
func filterFromQuery(c *gin.Context) (domain.JobFilter, error) {
	f := domain.JobFilter{
		Query:  c.Query("q"),
		Status: domain.Status(c.Query("status")),
		Portal: domain.Portal(c.Query("portal")),
	}
	if f.Status != "" && f.Status != "All" && !f.Status.Valid() {
		return f, apperror.BadRequest(fmt.Sprintf("Unknown status %q", f.Status))
	}
	if f.Portal != "" && f.Portal != "All" && !f.Portal.Valid() {
		return f, apperror.BadRequest(fmt.Sprintf("Unknown portal %q", f.Portal))
	}
	w, err := domain.ParseDateWindow(c.Query("window"))
	if err != nil {
		return f, apperror.BadRequest(err.Error())
	}
	f.Window = w
	return f, nil
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Records of the current identity, newest first, with the filtered subset. banner is true once after sign-in.
// @Tags         jobs
// @Produce      json
// @Param        q       query     string  false  "Title or company contains"
// @Param        status  query     string  false  "Status or All"
// @Param        portal  query     string  false  "Portal or All"
// @Param        window  query     string  false  "All, Today, Last2Days, Last1Week, Last1Month"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      503     {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	id := middleware.CurrentIdentity(c)
	listing, err := h.jobUC.ListJobs(c, id, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", gin.H{
		"jobs":     listing.Jobs,
		"total":    listing.Total,
		"filtered": listing.Filtered,
		"filter":   listing.Filter,
		"banner":   h.authUC.ConsumeSignInBanner(c, id),
	})
}

// CreateJob godoc
// @Summary      Create a job
// @Description  Adds a record for the current identity. Status defaults to Wishlist.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job := req.toJob()
	if err := h.jobUC.CreateJob(c, middleware.CurrentIdentity(c), job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", gin.H{
		"job":      job,
		"redirect": "/jobs",
	})
}

// GetJobDetails godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJob(c, middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Replaces every field except id, owner and created_at.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string      true  "Job ID"
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job := req.toJob()
	job.ID = c.Param("id")
	if err := h.jobUC.UpdateJob(c, middleware.CurrentIdentity(c), job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", gin.H{
		"job":      job,
		"redirect": "/jobs",
	})
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Without confirm=true answers 409 with the confirmation prompt. On a store failure the record is restored and the listing is returned in the error details.
// @Tags         jobs
// @Produce      json
// @Param        id       path      string  true   "Job ID"
// @Param        confirm  query     bool    false  "Confirm deletion"
// @Param        q        query     string  false  "Active filter, echoed into the returned listing"
// @Param        status   query     string  false  "Active filter"
// @Param        portal   query     string  false  "Active filter"
// @Param        window   query     string  false  "Active filter"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.Error(err)
		return
	}
	confirmed := c.Query("confirm") == "true"

	listing, err := h.jobUC.DeleteJob(c, middleware.CurrentIdentity(c), c.Param("id"), confirmed, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted successfully", listing)
}

// JobStats godoc
// @Summary      Job statistics
// @Description  Status counts, response/conversion/rejection rates and the next upcoming interview.
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs/stats [get]
// @Security     BearerAuth
func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.jobUC.GetStats(c, middleware.CurrentIdentity(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job statistics", stats)
}

// ExportJobs godoc
// @Summary      Export jobs
// @Description  Downloads the records (or only ids) as xlsx or csv.
// @Tags         jobs
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format  query     string  false  "xlsx (default) or csv"
// @Param        ids     query     string  false  "Comma separated job ids"
// @Success      200     {file}    binary
// @Failure      400     {object}  response.Response
// @Router       /jobs/export [get]
// @Security     BearerAuth
func (h *JobHandler) Export(c *gin.Context) {
	var ids []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	data, filename, contentType, err := h.exportUC.Export(c, middleware.CurrentIdentity(c), c.DefaultQuery("format", "xlsx"), ids)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// ArchiveJobs godoc
// @Summary      Archive an export
// @Description  Uploads an xlsx export to object storage. Signed-in accounts only.
// @Tags         jobs
// @Produce      json
// @Success      201  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /jobs/export/archive [post]
// @Security     BearerAuth
func (h *JobHandler) Archive(c *gin.Context) {
	location, err := h.exportUC.Archive(c, middleware.CurrentIdentity(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Export archived", gin.H{"location": location})
}
