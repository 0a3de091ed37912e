package v1

import (
	"errors"
	"net/http"

	"job-tracker-backend/internal/delivery/http/middleware"
	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Multipart overhead on top of the 5 MiB image limit
const maxAvatarRequestBytes = 6 << 20

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

// NewProfileHandler mounts the profile routes; uploadLimit guards picture uploads.
func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase, uploadLimit gin.HandlerFunc) {
	handler := &ProfileHandler{profileUC: profileUC}

	profile := protected.Group("/profile")
	{
		profile.GET("", handler.Get)
		profile.PATCH("", handler.Update)
		profile.POST("/avatar", uploadLimit, handler.UploadAvatar)
		profile.GET("/avatar", handler.Avatar)
	}
}

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,not_blank,no_emoji,max=100"`
	Email string `json:"email" binding:"omitempty,email"`
}

// GetProfile godoc
// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileUC.GetProfile(c, middleware.CurrentIdentity(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", profile)
}

// UpdateProfile godoc
// @Summary      Edit guest profile
// @Description  Guests only; LinkedIn profiles are managed by LinkedIn.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateProfileRequest  true  "Name and email"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /profile [patch]
// @Security     BearerAuth
func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	profile, err := h.profileUC.UpdateGuestProfile(c, middleware.CurrentIdentity(c), req.Name, req.Email)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// UploadAvatar godoc
// @Summary      Upload guest picture
// @Description  PNG, JPEG or GIF up to 5 MB, scaled to 128x128.
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Picture"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      413    {object}  response.Response
// @Router       /profile/avatar [post]
// @Security     BearerAuth
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarRequestBytes)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(apperror.New(http.StatusRequestEntityTooLarge, "Image must be 5 MB or smaller", err))
			return
		}
		c.Error(apperror.BadRequest("image file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Unable to read the uploaded image"))
		return
	}
	defer file.Close()

	id := middleware.CurrentIdentity(c)
	if err := h.profileUC.SetGuestAvatar(c, id, file); err != nil {
		c.Error(err)
		return
	}

	profile, err := h.profileUC.GetProfile(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Picture updated", profile)
}

// GuestAvatar godoc
// @Summary      Guest picture
// @Tags         profile
// @Produce      image/jpeg
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /profile/avatar [get]
// @Security     BearerAuth
func (h *ProfileHandler) Avatar(c *gin.Context) {
	data, err := h.profileUC.GuestAvatar(c, middleware.CurrentIdentity(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Cache-Control", "private, max-age=60")
	c.Data(http.StatusOK, "image/jpeg", data)
}
