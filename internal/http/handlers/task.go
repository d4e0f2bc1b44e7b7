package handlers

import (
	"net/http"

	"taskhub_backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTask(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}

	var req service.CreateTaskInput
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "bad request"})
		return
	}

	t, err := h.Tasks.Create(c.Request.Context(), uid, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) GetTask(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	t, err := h.Tasks.Get(c.Request.Context(), uid, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateTaskInput
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "bad request"})
		return
	}

	t, err := h.Tasks.Update(c.Request.Context(), uid, id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), uid, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "task deleted"})
}

func (h *Handler) ToggleTaskState(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "not authorized"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	t, err := h.Tasks.ToggleState(c.Request.Context(), uid, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
