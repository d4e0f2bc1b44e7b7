package handlers

import (
	"net/http"
	"strconv"

	"taskhub_backend/internal/service"

	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) ListProjects(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}

	projects, err := h.Projects.List(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) CreateProject(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}

	var req service.CreateProjectInput
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "bad request"})
		return
	}

	p, err := h.Projects.Create(c.Request.Context(), uid, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) GetProject(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.Projects.Get(c.Request.Context(), uid, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateProjectInput
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "bad request"})
		return
	}

	p, err := h.Projects.Update(c.Request.Context(), uid, id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Projects.Delete(c.Request.Context(), uid, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "project deleted"})
}

type collaboratorEmailRequest struct {
	Email string `json:"email"`
}

func (h *Handler) FindCollaborator(c *gin.Context) {
	var req collaboratorEmailRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "bad request"})
		return
	}

	ref, err := h.Projects.FindCollaborator(c.Request.Context(), req.Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ref)
}

func (h *Handler) AddCollaborator(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req collaboratorEmailRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "bad request"})
		return
	}

	if err := h.Projects.AddCollaborator(c.Request.Context(), uid, id, req.Email); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "collaborator added"})
}

type removeCollaboratorRequest struct {
	ID int64 `json:"id"`
}

func (h *Handler) RemoveCollaborator(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req removeCollaboratorRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "bad request"})
		return
	}

	if err := h.Projects.RemoveCollaborator(c.Request.Context(), uid, id, req.ID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "collaborator removed"})
}
