package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"callorder/pkg/order"
)

// getMenu returns the menu.
// @Summary Get menu
// @Produce json
// @Success 200 {object} menu.Menu
// @Router /menu [get]
func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetMenu(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// addMenuItem upserts a menu item.
// @Summary Add menu item
// @Description Inserts the item or replaces the one with the same name
// @Accept json
// @Produce json
// @Param item body order.Item true "Item"
// @Success 201 {object} order.Item
// @Failure 400 {string} string
// @Router /menu/items [post]
func (h *Handler) addMenuItem(w http.ResponseWriter, r *http.Request) {
	var it order.Item
	if err := decode(r, &it); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.AddMenuItem(r.Context(), it); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

// clearMenu removes every menu item.
// @Summary Clear menu
// @Success 204
// @Router /menu/items [delete]
func (h *Handler) clearMenu(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearMenu(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// createCall starts a call and responds with its id as plain text.
// @Summary Create call
// @Produce plain
// @Success 201 {string} string "call id"
// @Router /calls [post]
func (h *Handler) createCall(w http.ResponseWriter, r *http.Request) {
	id, err := h.svc.CreateCall(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(id))
}

// getCall returns a call and its order.
// @Summary Get call
// @Produce json
// @Param id path string true "Call ID"
// @Success 200 {object} call.Call
// @Failure 404 {string} string
// @Router /calls/{id} [get]
func (h *Handler) getCall(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCall(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// getOrder returns the call's order, null when none was started.
// @Summary Get order
// @Produce json
// @Param id path string true "Call ID"
// @Success 200 {object} order.Order
// @Failure 404 {string} string
// @Router /calls/{id}/order [get]
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// clearOrder drops the call's order.
// @Summary Clear order
// @Param id path string true "Call ID"
// @Success 204
// @Failure 404 {string} string
// @Router /calls/{id}/order [delete]
func (h *Handler) clearOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// addItems adds units of a menu item to the call's order.
// @Summary Add items to order
// @Accept json
// @Produce json
// @Param id path string true "Call ID"
// @Param request body itemsRequest true "Item and quantity (default 1)"
// @Success 200 {object} order.Order
// @Failure 400 {string} string
// @Failure 404 {string} string
// @Router /calls/{id}/order/items [post]
func (h *Handler) addItems(w http.ResponseWriter, r *http.Request) {
	var req itemsRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	o, err := h.svc.AddItemsToOrder(r.Context(), mux.Vars(r)["id"], req.Item, req.quantity())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// removeItems removes up to the requested units of an item from the order.
// @Summary Remove items from order
// @Description Removing more units than present is not an error
// @Accept json
// @Produce json
// @Param id path string true "Call ID"
// @Param request body itemsRequest true "Item and quantity (default 1)"
// @Success 200 {object} order.Order
// @Failure 400 {string} string
// @Failure 404 {string} string
// @Router /calls/{id}/order/items [delete]
func (h *Handler) removeItems(w http.ResponseWriter, r *http.Request) {
	var req itemsRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	o, err := h.svc.RemoveItemsFromOrder(r.Context(), mux.Vars(r)["id"], req.Item, req.quantity())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
