package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"items-api/models"
	"items-api/store"
)

type ItemController struct {
	Store store.Store
}

func NewItemController(s store.Store) *ItemController {
	return &ItemController{Store: s}
}

func (c *ItemController) CreateItem(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInput(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := c.Store.Create(r.Context(), input.Item, input.GetDescription())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (c *ItemController) GetAllItems(w http.ResponseWriter, r *http.Request) {
	items, err := c.Store.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.Item{}
	}

	writeJSON(w, http.StatusOK, items)
}

func (c *ItemController) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := c.Store.Get(r.Context(), itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (c *ItemController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	input, err := decodeInput(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := c.Store.Update(r.Context(), itemID, input.Item, input.GetDescription())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DeleteItem answers with a one-element array holding the removed item.
func (c *ItemController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := c.Store.Delete(r.Context(), itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, []*models.Item{item})
}

// pathID treats an id that is not a positive integer as an unknown item.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, store.ErrNotFound
	}
	return id, nil
}

// decodeInput reads the request body. An empty body yields empty fields.
func decodeInput(r *http.Request) (models.ItemInput, error) {
	var input models.ItemInput
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil && !errors.Is(err, io.EOF) {
		return input, &BadRequestError{Err: err}
	}
	return input, nil
}
