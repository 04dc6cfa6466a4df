package orders

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"paper-dashboard/internal/httputil"
	"paper-dashboard/internal/model"
	"paper-dashboard/internal/types"
	"paper-dashboard/internal/web"
)

type Handler struct {
	svc   *Service
	views *web.Renderer
}

func NewHandler(svc *Service, views *web.Renderer) *Handler {
	return &Handler{svc: svc, views: views}
}

// TradeForm handles GET /.
func (h *Handler) TradeForm(w http.ResponseWriter, r *http.Request) {
	h.renderTrade(w, r, http.StatusOK, DefaultTicket(), nil)
}

// SubmitForm handles POST / from the trade form.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderTrade(w, r, http.StatusBadRequest, DefaultTicket(), &web.Flash{Kind: web.FlashError, Text: SubmitErrorMessage(err)})
		return
	}
	ticket := Ticket{
		Symbol:      r.PostForm.Get("symbol"),
		Qty:         r.PostForm.Get("qty"),
		Side:        r.PostForm.Get("side"),
		Type:        r.PostForm.Get("type"),
		TimeInForce: r.PostForm.Get("time_in_force"),
	}
	req, err := ParseTicket(ticket)
	if err != nil {
		h.renderTrade(w, r, http.StatusBadRequest, ticket, &web.Flash{Kind: web.FlashError, Text: SubmitErrorMessage(err)})
		return
	}
	ticket.Symbol = req.Symbol
	res, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		h.renderTrade(w, r, http.StatusBadGateway, ticket, &web.Flash{Kind: web.FlashError, Text: SubmitErrorMessage(err)})
		return
	}
	h.renderTrade(w, r, http.StatusOK, ticket, &web.Flash{Kind: web.FlashSuccess, Text: SubmittedMessage(res.OrderID)})
}

// HistoryPage handles GET /history.
func (h *Handler) HistoryPage(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.History(r.Context())
	if err != nil {
		h.render(w, r, http.StatusBadGateway, web.PageHistory, web.Page{
			Flash: &web.Flash{Kind: web.FlashError, Text: HistoryErrorMessage(err)},
			Data:  web.HistoryView{},
		})
		return
	}
	if len(records) == 0 {
		h.render(w, r, http.StatusOK, web.PageHistory, web.Page{
			Flash: &web.Flash{Kind: web.FlashInfo, Text: NoOrdersMessage},
			Data:  web.HistoryView{},
		})
		return
	}
	blocks, err := RenderRecords(records)
	if err != nil {
		h.render(w, r, http.StatusInternalServerError, web.PageHistory, web.Page{
			Flash: &web.Flash{Kind: web.FlashError, Text: HistoryErrorMessage(err)},
			Data:  web.HistoryView{},
		})
		return
	}
	h.render(w, r, http.StatusOK, web.PageHistory, web.Page{Data: web.HistoryView{Records: blocks}})
}

// RenderRecords formats each record as an indented JSON object, one per order.
func RenderRecords(records []model.OrderRecord) ([]string, error) {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		b, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, err
		}
		out = append(out, string(b))
	}
	return out, nil
}

type placeOrderRequest struct {
	Symbol      string      `json:"symbol"`
	Qty         json.Number `json:"qty"`
	Side        string      `json:"side"`
	Type        string      `json:"type"`
	TimeInForce string      `json:"time_in_force"`
}

type placeOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

type listOrdersResponse struct {
	Items   []model.OrderRecord `json:"items"`
	Message string              `json:"message,omitempty"`
}

// Place handles POST /v1/orders.
func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	var body placeOrderRequest
	if err := httputil.ReadJSON(r, &body); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: SubmitErrorMessage(err)})
		return
	}
	req, err := ParseTicket(Ticket{
		Symbol:      body.Symbol,
		Qty:         body.Qty.String(),
		Side:        body.Side,
		Type:        body.Type,
		TimeInForce: body.TimeInForce,
	})
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: SubmitErrorMessage(err)})
		return
	}
	res, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadGateway, httputil.ErrorResponse{Error: SubmitErrorMessage(err)})
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, placeOrderResponse{
		OrderID: res.OrderID,
		Status:  res.Status,
		Message: SubmittedMessage(res.OrderID),
	})
}

// List handles GET /v1/orders.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.History(r.Context())
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadGateway, httputil.ErrorResponse{Error: HistoryErrorMessage(err)})
		return
	}
	resp := listOrdersResponse{Items: records}
	if len(records) == 0 {
		resp.Message = NoOrdersMessage
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) renderTrade(w http.ResponseWriter, r *http.Request, status int, t Ticket, flash *web.Flash) {
	h.render(w, r, status, web.PageTrade, web.Page{Flash: flash, Data: tradeForm(t)})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, p web.Page) {
	if err := h.views.Render(w, status, page, p); err != nil {
		slog.Error("render page", "page", page, "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func tradeForm(t Ticket) web.TradeForm {
	form := web.TradeForm{
		Symbol:      t.Symbol,
		Qty:         t.Qty,
		Side:        t.Side,
		Type:        t.Type,
		TimeInForce: t.TimeInForce,
	}
	for _, s := range types.OrderSides {
		form.Sides = append(form.Sides, string(s))
	}
	for _, o := range types.OrderTypes {
		form.Types = append(form.Types, string(o))
	}
	for _, tif := range types.TimeInForces {
		form.TimeInForces = append(form.TimeInForces, string(tif))
	}
	return form
}
