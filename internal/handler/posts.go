package handler

import (
	"net/http"

	"github.com/carspot/backend/internal/model"
	"github.com/carspot/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// Feed godoc
// @Summary Public news feed, newest first
// @Tags actu
// @Produce json
// @Success 200 {array} model.Post
// @Router /actu/feed [get]
func (h *PostHandler) Feed(c *gin.Context) {
	posts, err := h.svc.Feed(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Create godoc
// @Summary Publish a post
// @Tags actu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.PostRequest true "Post"
// @Success 201 {object} model.Post
// @Router /actu/posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req model.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	post, err := h.svc.Create(c.Request.Context(), GetAuthUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Delete godoc
// @Summary Delete a post (author only)
// @Tags actu
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} model.MessageResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /actu/posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), GetAuthUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Post supprimé"})
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Description 204 when the post becomes liked, 200 {liked:false} when the like is removed.
// @Tags actu
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Success 200 {object} model.LikeResponse
// @Router /actu/posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	liked, err := h.svc.ToggleLike(c.Request.Context(), GetAuthUser(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if liked {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, model.LikeResponse{Liked: false})
}

// Comments godoc
// @Summary List comments of a post
// @Tags actu
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} model.Comment
// @Router /actu/posts/{id}/comments [get]
func (h *PostHandler) Comments(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	comments, err := h.svc.Comments(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment godoc
// @Summary Comment on a post
// @Tags actu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body model.CommentRequest true "Comment"
// @Success 201 {object} model.Comment
// @Router /actu/posts/{id}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	var req model.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), GetAuthUser(c), id, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary Delete a comment (author only)
// @Tags actu
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} model.MessageResponse
// @Router /actu/posts/{id}/comments/{commentId} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	postID, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.DeleteComment(c.Request.Context(), GetAuthUser(c), postID, commentID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Commentaire supprimé"})
}
