package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/inmodata/pisos-dashboard/internal/compare"
	"github.com/inmodata/pisos-dashboard/internal/model"
	"github.com/inmodata/pisos-dashboard/internal/stats"
	"github.com/inmodata/pisos-dashboard/internal/view"
)

type usersResponse struct {
	NoData    bool                      `json:"no_data,omitempty"`
	Bounds    view.Bounds               `json:"bounds"`
	Listings  []model.Listing           `json:"listings,omitempty"`
	Provinces []stats.ProvinceAggregate `json:"provinces,omitempty"`
	Map       []stats.ProvinceAggregate `json:"map,omitempty"`
	Histogram []stats.TaggedListing     `json:"histogram,omitempty"`
	Summary   stats.Summary             `json:"summary"`
	Labels    map[string]string         `json:"labels,omitempty"`
}

type clientsResponse struct {
	Box     boxBlock      `json:"box"`
	Corr    corrBlock     `json:"correlation"`
	Summary stats.Summary `json:"summary"`
}

type boxBlock struct {
	NoData bool           `json:"no_data,omitempty"`
	Rows   []stats.BoxRow `json:"rows,omitempty"`
}

type corrBlock struct {
	NoData   bool                   `json:"no_data,omitempty"`
	Province string                 `json:"province,omitempty"`
	Scatter  []stats.ScatterPoint   `json:"scatter,omitempty"`
	Rooms    []stats.RoomsAggregate `json:"rooms,omitempty"`
}

// handleProvinces lists the distinct provinces for the selection widgets,
// optionally narrowed by transaction type.
func (s *Server) handleProvinces(w http.ResponseWriter, r *http.Request) {
	table, err := s.loader.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dataset unavailable")
		return
	}

	listings := table.Listings
	if tx := parseTransaction(r.URL.Query().Get("type")); tx != "" {
		listings = view.ClientsBase(listings, tx, s.minRent)
	}
	writeJSON(w, http.StatusOK, map[string]any{"provinces": model.DistinctProvinces(listings)})
}

// handleUsersView serves the "users" view: filtered table, map aggregation,
// outlier-tagged histogram rows, and scalar summary.
func (s *Server) handleUsersView(w http.ResponseWriter, r *http.Request) {
	table, err := s.loader.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dataset unavailable")
		return
	}

	q := r.URL.Query()
	params := view.UsersParams{
		Province:    q.Get("province"),
		Transaction: parseTransaction(q.Get("type")),
		MinPrice:    parseOptionalFloat(q.Get("min_price")),
		MaxPrice:    parseOptionalFloat(q.Get("max_price")),
	}
	if params.Province == "" || params.Transaction == "" {
		writeError(w, http.StatusBadRequest, "province and type are required")
		return
	}

	subset, bounds := view.Users(table.Listings, params, s.minRent)
	if len(subset) == 0 {
		writeJSON(w, http.StatusOK, usersResponse{
			NoData:  true,
			Bounds:  bounds,
			Summary: stats.Summarize(nil),
		})
		return
	}

	byProvince := stats.ByProvince(subset)
	writeJSON(w, http.StatusOK, usersResponse{
		Bounds:    bounds,
		Listings:  subset,
		Provinces: byProvince,
		Map:       stats.MapRows(byProvince),
		Histogram: stats.TagOutliers(subset, s.zThreshold),
		Summary:   stats.Summarize(subset),
		Labels:    compare.LabelIndex(subset),
	})
}

// handleClientsView serves the "clients" view: the price-per-m² box plot and
// the per-province correlation charts. Each block degrades to a no-data
// placeholder independently.
func (s *Server) handleClientsView(w http.ResponseWriter, r *http.Request) {
	table, err := s.loader.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dataset unavailable")
		return
	}

	q := r.URL.Query()
	tx := parseTransaction(q.Get("type"))
	if tx == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	base := view.ClientsBase(table.Listings, tx, s.minRent)
	priceArea := view.ClientsPriceArea(base, parseList(q.Get("provinces")))

	resp := clientsResponse{Summary: stats.Summarize(priceArea)}
	if len(priceArea) == 0 {
		resp.Box.NoData = true
	} else {
		resp.Box.Rows = stats.BoxByProvince(priceArea)
	}

	corrProvince := q.Get("corr_province")
	corr := view.ByProvince(base, corrProvince)
	if corrProvince == "" || len(corr) == 0 {
		resp.Corr.NoData = true
	} else {
		resp.Corr.Province = corrProvince
		resp.Corr.Scatter = stats.ScatterPriceArea(corr)
		resp.Corr.Rooms = stats.ByRooms(corr)
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleCompare resolves two listing ids against the full base table.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	table, err := s.loader.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dataset unavailable")
		return
	}

	q := r.URL.Query()
	idA, idB := q.Get("a"), q.Get("b")
	if idA == "" || idB == "" {
		writeError(w, http.StatusBadRequest, "a and b listing ids are required")
		return
	}

	cmp, err := compare.Resolve(table, idA, idB)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown listing id")
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

// handleCurrency proxies the cached Frankfurter series.
func (s *Server) handleCurrency(w http.ResponseWriter, r *http.Request) {
	if s.fx == nil {
		writeError(w, http.StatusNotImplemented, "currency client not configured")
		return
	}

	q := r.URL.Query()
	code := q.Get("code")
	year, err := strconv.Atoi(q.Get("year"))
	if code == "" || err != nil {
		writeError(w, http.StatusBadRequest, "code and numeric year are required")
		return
	}

	rates, err := s.fx.Series(r.Context(), code, year)
	if err != nil {
		writeError(w, http.StatusBadGateway, "currency fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"code": strings.ToUpper(code), "year": year, "rates": rates})
}

func parseTransaction(raw string) model.TransactionType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sale", "venta":
		return model.TransactionSale
	case "rent", "alquiler":
		return model.TransactionRent
	}
	return ""
}

func parseOptionalFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
