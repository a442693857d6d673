package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/gorilla/mux"
)

// pathID parses the {id} route variable as a positive int64.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.Users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.fail(w, r, "get user failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
