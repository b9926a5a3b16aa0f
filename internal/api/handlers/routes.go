package handlers

import (
	"encoding/json"
	"io"
	"meal-delivery-service/internal/api/dto"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/services"
	"net/http"
	"strings"
	"time"
)

// RouteHandler exposes route ordering and delivery sheets.
type RouteHandler struct {
	Planner *services.RoutePlanner
}

func (h *RouteHandler) Waypoints(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	date, err := queryDate(r, "date")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	mode := strings.TrimSpace(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = services.ModeEuclidean
	}

	waypoints, err := h.Planner.Waypoints(r.Context(), routeID, date, mode)
	if err != nil {
		writeServiceError(w, r, "route waypoints", err)
		return
	}

	res := dto.WaypointsResponse{
		RouteID:   routeID,
		Mode:      mode,
		Waypoints: make([]dto.WaypointResponse, 0, len(waypoints)),
	}
	for _, wp := range waypoints {
		res.Waypoints = append(res.Waypoints, waypointResponse(wp))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RouteHandler) SaveSequence(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.SaveSequenceRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}
	if req.ClientIDs == nil {
		writeError(w, r, http.StatusBadRequest, "client_ids is required")
		return
	}

	if strings.TrimSpace(req.Date) == "" {
		err = h.Planner.SaveRouteSequence(r.Context(), routeID, req.ClientIDs)
	} else {
		var date time.Time
		date, err = parseDate(req.Date)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		err = h.Planner.SaveDeliverySequence(r.Context(), routeID, date, req.ClientIDs)
	}
	if err != nil {
		writeServiceError(w, r, "save sequence", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SequenceResponse{
		RouteID:   routeID,
		Date:      strings.TrimSpace(req.Date),
		ClientIDs: req.ClientIDs,
	})
}

func (h *RouteHandler) Clients(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	clients, err := h.Planner.ClientsOnRoute(r.Context(), routeID)
	if err != nil {
		writeServiceError(w, r, "route clients", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RouteClientsResponse{
		RouteID: routeID,
		Clients: routeClients(clients),
	})
}

func (h *RouteHandler) History(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	date, err := parseDate(r.PathValue("date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	clients, stale, err := h.Planner.ClientsOnDeliveryHistory(r.Context(), routeID, date)
	if err != nil {
		writeServiceError(w, r, "route history", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RouteClientsResponse{
		RouteID:        routeID,
		Date:           date.Format(time.DateOnly),
		Clients:        routeClients(clients),
		StaleClientIDs: stale,
	})
}

func (h *RouteHandler) OptimizedSequence(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ids, err := h.Planner.OptimizedSequence(r.Context(), routeID)
	if err != nil {
		writeServiceError(w, r, "optimized sequence", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SequenceResponse{RouteID: routeID, ClientIDs: ids})
}

func (h *RouteHandler) Sheet(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	date, err := queryDate(r, "date")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sheet, err := h.Planner.RouteSheet(r.Context(), routeID, date)
	if err != nil {
		writeServiceError(w, r, "route sheet", err)
		return
	}

	res := dto.RouteSheetResponse{
		RouteID:    sheet.RouteID,
		RouteName:  sheet.RouteName,
		Date:       date.Format(time.DateOnly),
		Summary:    make([]dto.RouteSummaryLineResponse, 0, len(sheet.Summary)),
		Deliveries: make([]dto.RouteDeliveryResponse, 0, len(sheet.Deliveries)),
	}
	for _, l := range sheet.Summary {
		res.Summary = append(res.Summary, dto.RouteSummaryLineResponse{
			ComponentGroup: string(l.ComponentGroup),
			RegularQty:     l.RegularQty,
			LargeQty:       l.LargeQty,
		})
	}
	for _, d := range sheet.Deliveries {
		items := make([]dto.DeliveryItemResponse, 0, len(d.DeliveryItems))
		for _, it := range d.DeliveryItems {
			items = append(items, dto.DeliveryItemResponse{
				ComponentGroup: string(it.ComponentGroup),
				Size:           string(it.Size),
				TotalQuantity:  it.TotalQuantity,
			})
		}
		res.Deliveries = append(res.Deliveries, dto.RouteDeliveryResponse{
			ClientID:   d.ClientID,
			ClientName: d.ClientName,
			Address:    d.Address,
			Items:      items,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func waypointResponse(wp domain.RouteWaypoint) dto.WaypointResponse {
	res := dto.WaypointResponse{
		ID:       wp.StopID,
		Member:   wp.Member,
		Address:  wp.Address,
		Distance: wp.Distance,
	}
	if wp.Coordinates != nil {
		lat, lon := wp.Coordinates.Lat, wp.Coordinates.Lon
		res.Lat, res.Lon = &lat, &lon
	}
	return res
}

func routeClients(seq []services.Sequenced[domain.RouteWaypoint]) []dto.RouteClientResponse {
	out := make([]dto.RouteClientResponse, 0, len(seq))
	for _, s := range seq {
		out = append(out, dto.RouteClientResponse{
			WaypointResponse:  waypointResponse(s.Item),
			HasBeenConfigured: s.HasBeenConfigured,
		})
	}
	return out
}
