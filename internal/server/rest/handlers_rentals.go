package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/server/services"
)

const (
	msgRentalCreated = "Rental created !"
	msgRentalUpdated = "Rental updated !"
)

func (h *Handlers) listRentals(w http.ResponseWriter, r *http.Request) {
	items, err := h.Rentals.List(r.Context())
	if err != nil {
		h.fail(w, r, "list rentals failed", err)
		return
	}

	out := rentalsResponse{Rentals: make([]rentalResponse, 0, len(items))}
	for _, item := range items {
		out.Rentals = append(out.Rentals, toRentalResponse(item))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getRental(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}

	rental, err := h.Rentals.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "rental not found")
			return
		}
		h.fail(w, r, "get rental failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toRentalResponse(rental))
}

func (h *Handlers) createRental(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	in, err := rentalInputFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		writeError(w, http.StatusBadRequest, "picture is required")
		return
	}
	defer file.Close()

	pic := services.Picture{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}

	if _, err := h.Rentals.Create(r.Context(), p, in, pic); err != nil {
		h.fail(w, r, "create rental failed", err)
		return
	}

	writeMessage(w, msgRentalCreated)
}

func (h *Handlers) updateRental(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	in, err := rentalInputFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Rentals.Update(r.Context(), p, id, in); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "rental not found")
			return
		}
		h.fail(w, r, "update rental failed", err)
		return
	}

	writeMessage(w, msgRentalUpdated)
}

func rentalInputFromForm(r *http.Request) (services.RentalInput, error) {
	surface, err := strconv.Atoi(strings.TrimSpace(r.FormValue("surface")))
	if err != nil {
		return services.RentalInput{}, errors.New("surface must be an integer")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("price")), 64)
	if err != nil {
		return services.RentalInput{}, errors.New("price must be a number")
	}
	return services.RentalInput{
		Name:        r.FormValue("name"),
		Surface:     surface,
		Price:       price,
		Description: r.FormValue("description"),
	}, nil
}
