package handlers

import (
	"meal-delivery-service/internal/api/dto"
	"meal-delivery-service/internal/services"
	"net/http"
	"time"
)

// KitchenHandler exposes the kitchen count and the meal labels of a day.
type KitchenHandler struct {
	Service *services.KitchenReportService
}

func (h *KitchenHandler) KitchenCount(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.Service.KitchenCount(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, "kitchen count", err)
		return
	}

	res := dto.KitchenCountResponse{
		Date:           date.Format(time.DateOnly),
		ComponentLines: make([]dto.ComponentLineResponse, 0, len(report.ComponentLines)),
		MealLines:      make([]dto.MealLineResponse, 0, len(report.MealLines)),
		NumLabels:      report.NumLabels,
	}
	for _, l := range report.ComponentLines {
		res.ComponentLines = append(res.ComponentLines, dto.ComponentLineResponse{
			ComponentGroup: string(l.ComponentGroup),
			RegularQty:     l.RegularQty,
			LargeQty:       l.LargeQty,
			Name:           l.Name,
			Ingredients:    l.Ingredients,
		})
	}
	for _, l := range report.MealLines {
		res.MealLines = append(res.MealLines, dto.MealLineResponse{
			Client:          l.Client,
			RegularQty:      l.RegularQty,
			LargeQty:        l.LargeQty,
			IngredientClash: l.IngredientClash,
			RestIngredients: l.RestIngredients,
			RestItems:       l.RestItems,
			Span:            l.Span,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *KitchenHandler) Labels(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.Service.KitchenCount(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, "meal labels", err)
		return
	}

	res := dto.MealLabelsResponse{
		Date:      date.Format(time.DateOnly),
		NumLabels: report.NumLabels,
		Labels:    make([]dto.MealLabelResponse, 0, len(report.Labels)),
	}
	for _, l := range report.Labels {
		res.Labels = append(res.Labels, dto.MealLabelResponse{
			Route:                   l.Route,
			Name:                    l.Name,
			Date:                    l.Date,
			Size:                    l.Size,
			MainDishName:            l.MainDishName,
			MainDishIngredientLines: l.MainDishIngredientLines,
			DishClashes:             l.DishClashes,
			RequirementLines:        l.RequirementLines,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
