package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-account-service/internal/usecase/user"
	pkgerrors "user-account-service/pkg/errors"
)

// UserHandler handles HTTP requests for account operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating an account.
// Field formats are checked by the account validators, not binding tags, so
// every failing field is reported in one response.
type CreateUserRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EditUserRequest represents the HTTP request body for editing an account.
// Email selects the account; absent fields leave stored values unchanged.
type EditUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// DeleteUserRequest represents the HTTP request body for deleting an account
type DeleteUserRequest struct {
	Email string `json:"email"`
}

// UserRef identifies an account in success responses
type UserRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserResponse is the success envelope for create and edit
type UserResponse struct {
	Message string  `json:"message"`
	User    UserRef `json:"user"`
}

// MessageResponse is the minimal response envelope
type MessageResponse struct {
	Message string `json:"message"`
}

// ListUserItem is one entry of the account listing; only the full name and
// email are ever exposed here.
type ListUserItem struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// UploadImageResponse is the success envelope for image uploads
type UploadImageResponse struct {
	Message  string `json:"message"`
	FilePath string `json:"filePath"`
}

// CreateUser handles POST /user/create
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid request body"})
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err, "Error creating user")
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		Message: "User created successfully",
		User:    UserRef{ID: resp.ID, Email: resp.Email},
	})
}

// EditUser handles PUT /user/edit
func (h *UserHandler) EditUser(c *gin.Context) {
	var req EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid edit user request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid request body"})
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err, "Error updating user")
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		Message: "User updated successfully",
		User:    UserRef{ID: resp.ID, Email: resp.Email},
	})
}

// DeleteUser handles DELETE /user/delete
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid delete user request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid request body"})
		return
	}

	if err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{Email: req.Email}); err != nil {
		h.handleError(c, err, "Error deleting user")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// GetAllUsers handles GET /user/getAll
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "Error retrieving users")
		return
	}

	items := make([]ListUserItem, len(resp.Users))
	for i, u := range resp.Users {
		items[i] = ListUserItem{
			FullName: u.FullName,
			Email:    u.Email,
		}
	}

	c.JSON(http.StatusOK, items)
}

// UploadImage handles POST /user/uploadImage (multipart: email + image file)
func (h *UserHandler) UploadImage(c *gin.Context) {
	email := c.PostForm("email")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.log.Warn("missing image file in upload request", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error("failed to open uploaded file", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Error uploading image"})
		return
	}
	defer file.Close()

	resp, err := h.uc.UploadImage(c.Request.Context(), user.UploadImageRequest{
		Email:       email,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		File:        file,
	})
	if err != nil {
		h.handleError(c, err, "Error uploading image")
		return
	}

	c.JSON(http.StatusOK, UploadImageResponse{
		Message:  "Image uploaded successfully",
		FilePath: resp.FilePath,
	})
}

// handleError converts usecase errors to HTTP responses. Validation failures
// carry the field->message map; typed errors map to their status; anything
// unexpected becomes a 500 with a generic message, details go to the log only.
func (h *UserHandler) handleError(c *gin.Context, err error, fallback string) {
	var verr *pkgerrors.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
		return
	}

	var statusErr pkgerrors.HTTPStatuser
	if errors.As(err, &statusErr) {
		c.JSON(statusErr.HTTPStatus(), MessageResponse{Message: err.Error()})
		return
	}

	h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": fallback,
		"error":   "internal error",
	})
}
