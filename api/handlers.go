package api

import (
	"bytes"
	"context"
	"net/http"

	"github.com/scom-repos/scom-scatter-chart-sub000/chart"
	"github.com/scom-repos/scom-scatter-chart-sub000/datasource"
	"github.com/scom-repos/scom-scatter-chart-sub000/render"
	"github.com/scom-repos/scom-scatter-chart-sub000/services"
	"github.com/scom-repos/scom-scatter-chart-sub000/widget"
	"github.com/yaoapp/kun/log"
)

// FormSchemaRequest is the body of POST /form-schema.
type FormSchemaRequest struct {
	Columns []string `json:"columns"`
}

// SuggestRequest is the body of POST /suggest.
type SuggestRequest struct {
	Columns []string    `json:"columns"`
	Rows    []chart.Row `json:"rows"`
	Prompt  string      `json:"prompt"`
}

// WidgetResponse identifies a widget.
type WidgetResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, widget.Register())
}

func (s *Server) handleFormSchema(w http.ResponseWriter, r *http.Request) {
	var req FormSchemaRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, widget.GetFormSchema(req.Columns))
}

// chartOf builds a throwaway widget for data and charts it.
func (s *Server) chartOf(ctx context.Context, data widget.Data) (widget.ChartData, error) {
	wg, err := widget.New(data, widget.WithSourceFactory(s.factory))
	if err != nil {
		return widget.ChartData{}, err
	}
	if err := wg.Refresh(ctx); err != nil {
		return widget.ChartData{}, err
	}
	return wg.GetChartData()
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var data widget.Data
	if !decode(w, r, &data) {
		return
	}
	out, err := s.chartOf(r.Context(), data)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var data widget.Data
	if !decode(w, r, &data) {
		return
	}
	out, err := s.chartOf(r.Context(), data)
	if err != nil {
		writeFailure(w, err)
		return
	}

	var page bytes.Buffer
	if err := render.HTML(&page, out.ChartData, data.Title, data.Description); err != nil {
		writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page.Bytes()); err != nil {
		log.Error("[api] failed to write page: %v", err)
	}
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if s.llm == nil {
		writeError(w, http.StatusInternalServerError, "language model is not configured")
		return
	}

	var req SuggestRequest
	if !decode(w, r, &req) {
		return
	}
	columns := req.Columns
	if len(columns) == 0 {
		table, err := datasource.Inline(req.Rows).Fetch(r.Context())
		if err != nil {
			writeFailure(w, err)
			return
		}
		columns = table.Columns
	}
	if len(columns) == 0 {
		writeError(w, http.StatusBadRequest, "columns or rows are required")
		return
	}

	rows := make([]map[string]interface{}, len(req.Rows))
	for i, row := range req.Rows {
		rows[i] = row
	}
	suggestion, err := services.SuggestOptions(r.Context(), s.llm, columns, rows, req.Prompt)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

func (s *Server) handleCreateWidget(w http.ResponseWriter, r *http.Request) {
	var data widget.Data
	if !decode(w, r, &data) {
		return
	}
	wg, err := widget.New(data, widget.WithSourceFactory(s.factory))
	if err != nil {
		writeFailure(w, err)
		return
	}
	s.registry.Add(wg)
	log.With(log.F{"widget": wg.ID()}).Info("[api] widget created")
	writeJSON(w, http.StatusCreated, WidgetResponse{ID: wg.ID()})
}

func (s *Server) handleGetWidget(w http.ResponseWriter, r *http.Request) {
	wg, err := s.registry.Get(r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wg.Data())
}

func (s *Server) handleUpdateWidget(w http.ResponseWriter, r *http.Request) {
	wg, err := s.registry.Get(r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	var data widget.Data
	if !decode(w, r, &data) {
		return
	}
	if err := wg.SetData(data); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, WidgetResponse{ID: wg.ID()})
}

func (s *Server) handleDeleteWidget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.registry.Remove(id); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, WidgetResponse{ID: id})
}

func (s *Server) handleWidgetChart(w http.ResponseWriter, r *http.Request) {
	wg, err := s.registry.Get(r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := wg.Refresh(r.Context()); err != nil {
		writeFailure(w, err)
		return
	}
	out, err := wg.GetChartData()
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
