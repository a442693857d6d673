package rest

import (
	"net/http"

	"github.com/dmitrijs2005/rentals/internal/server/services"
)

const msgMessageSent = "Message send with success"

func (h *Handlers) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	_, err := h.Messages.Send(r.Context(), services.MessageInput{
		Message:  req.Message,
		UserID:   req.UserID,
		RentalID: req.RentalID,
	})
	if err != nil {
		h.fail(w, r, "send message failed", err)
		return
	}

	writeMessage(w, msgMessageSent)
}
