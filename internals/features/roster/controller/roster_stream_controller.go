package controller

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"speaksy_backend/internals/features/roster/service"
	helper "speaksy_backend/internals/helpers"
)

// GET /api/u/teacher/students/stream
// Streams the joined roster as server-sent events: one snapshot up front,
// then a fresh one every time an assignment or progress row changes. Backs
// the live student modals without client-side polling.
func (ctrl *RosterController) StreamStudents(c *fiber.Ctx) error {
	teacherID, ok := helper.GetUserUUID(c)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if ctrl.Notifier == nil {
		return helper.Error(c, fiber.StatusServiceUnavailable, "Realtime updates unavailable")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	reqCtx := c.Context()

	reqCtx.SetBodyStreamWriter(func(w *bufio.Writer) {
		updates := make(chan service.RosterResult, 4)

		syncer := service.NewSyncer(ctrl.Service, ctrl.Notifier, teacherID)
		syncer.OnUpdate = func(result service.RosterResult) {
			select {
			case updates <- result:
			default:
			}
		}
		syncer.Start(reqCtx)
		defer syncer.Close()

		writeSnapshot := func(result service.RosterResult) bool {
			state := "loaded"
			switch result.State {
			case service.StateEmpty:
				state = "empty"
			case service.StateFailed:
				state = "failed"
			}
			payload, err := json.Marshal(fiber.Map{
				"state":    state,
				"students": result.Students,
			})
			if err != nil {
				return true
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			return w.Flush() == nil
		}

		if !writeSnapshot(syncer.Result()) {
			return
		}

		keepalive := time.NewTicker(25 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case <-reqCtx.Done():
				return
			case result := <-updates:
				if !writeSnapshot(result) {
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
