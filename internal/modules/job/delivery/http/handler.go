package handler

import (
	"fmt"
	"net/http"

	jobDto "anoa.com/careerhub/internal/modules/job/dto"
	job "anoa.com/careerhub/internal/modules/job/service"
	"anoa.com/careerhub/internal/urls"
	"anoa.com/careerhub/pkg/request"
	"anoa.com/careerhub/pkg/response"
	"anoa.com/careerhub/pkg/validator"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	service job.Service
}

func NewJobHandler(service job.Service) *JobHandler {
	return &JobHandler{service: service}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req jobDto.JobRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.CreateJob(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, http.StatusCreated, urls.JobList, "Job created successfully!", res)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	var filter jobDto.JobFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobs, err := h.service.ListJobs(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": jobs})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := request.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	detail, err := h.service.GetJobDetail(c.Request.Context(), response.OptionalUserID(c), jobID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID, err := request.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req jobDto.JobRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.UpdateJob(c.Request.Context(), userID, jobID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, http.StatusOK, urls.JobDetail(jobID), "Job updated successfully!", res)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID, err := request.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteJob(c.Request.Context(), userID, jobID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, http.StatusOK, urls.JobList, "Job deleted successfully!", nil)
}

func (h *JobHandler) ApplyJob(c *gin.Context) {
	jobID, err := request.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resume, closeResume, err := request.FormFile(c, "resume")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer closeResume()

	res, err := h.service.Apply(c.Request.Context(), response.OptionalUserID(c), jobID, resume)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	location := urls.JobDetail(res.JobID)
	if res.Outcome == jobDto.ApplyAlreadyApplied {
		response.RedirectWithError(c, location, job.MsgAlreadyApplied)
		return
	}

	response.Redirect(c, http.StatusSeeOther, location, job.MsgApplied, res)
}

func (h *JobHandler) RejectApplicant(c *gin.Context) {
	applicantID, err := request.ParamUUID(c, "applicant_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.RejectApplicant(c.Request.Context(), userID, applicantID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	location := urls.JobDetail(res.JobID)
	if !res.Rejected {
		response.RedirectWithError(c, location, job.MsgRejectForbidden)
		return
	}

	response.Redirect(c, http.StatusSeeOther, location, fmt.Sprintf(job.MsgRejectedTemplate, res.Username), res)
}
