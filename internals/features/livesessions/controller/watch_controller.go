package controller

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"speaksy_backend/internals/features/livesessions/model"
	"speaksy_backend/internals/features/livesessions/service"
	helper "speaksy_backend/internals/helpers"
)

// GET /api/public/live-sessions/:id/watch
// Streams row changes for one session as server-sent events (viewer counter,
// status flips). The subscription is released when the client goes away.
func (ctrl *LiveSessionController) Watch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session id")
	}
	if ctrl.Notifier == nil {
		return helper.Error(c, fiber.StatusServiceUnavailable, "Realtime updates unavailable")
	}

	row, err := ctrl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch live session")
	}
	if row == nil {
		return helper.Error(c, fiber.StatusNotFound, "Live session not found")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	reqCtx := c.Context()
	initial, _ := json.Marshal(row)

	reqCtx.SetBodyStreamWriter(func(w *bufio.Writer) {
		changes := make(chan model.LiveSession, 8)
		unsub := service.WatchSession(ctrl.Notifier, id, func(row model.LiveSession) {
			select {
			case changes <- row:
			default: // slow consumer; drop rather than block dispatch
			}
		})
		defer unsub()

		fmt.Fprintf(w, "data: %s\n\n", initial)
		if err := w.Flush(); err != nil {
			return
		}

		keepalive := time.NewTicker(25 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case <-reqCtx.Done():
				return
			case row := <-changes:
				payload, err := json.Marshal(row)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}
