package adapthttp

import (
	"net/http"

	"axisconv/internal/app"
	"axisconv/internal/domain"
)

type axisRequest struct {
	Preset   string      `json:"preset"`
	Name     string      `json:"name"`
	Kind     domain.Kind `json:"kind"`
	Factor   float64     `json:"factor"`
	Constant float64     `json:"constant"`
	Unit     *string     `json:"unit"`
}

func (a axisRequest) axis() domain.Axis {
	return domain.Axis{Name: a.Name, Kind: a.Kind, Factor: a.Factor, Constant: a.Constant, Unit: a.Unit}
}

type convertRequest struct {
	Direction app.Direction `json:"direction"`
	Values    []float64     `json:"values"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	names := domain.PresetNames()
	items := make([]domain.Axis, 0, len(names))
	for _, name := range names {
		p, _ := domain.LookupPreset(name)
		items = append(items, p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleAxes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		items, err := s.axes.ListAxes(ctx, user.ID, intQuery(r, "limit", 50))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body axisRequest
		if err := parseJSON(w, r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		var (
			axis *domain.Axis
			err  error
		)
		if body.Preset != "" {
			axis, err = s.axes.CreateFromPreset(ctx, user.ID, body.Preset, body.Name)
		} else {
			axis, err = s.axes.CreateAxis(ctx, user.ID, body.axis())
		}
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"axis": axis})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAxis(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		axis, err := s.axes.GetAxis(r.Context(), user.ID, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"axis": axis})

	case http.MethodDelete:
		if err := s.axes.DeleteAxis(r.Context(), user.ID, id); err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAxisConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body convertRequest
	if err := parseJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := s.axes.Convert(r.Context(), userFromContext(r).ID, id, body.Direction, body.Values)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleConvert converts through an axis given inline in the request.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Axis axisRequest `json:"axis"`
		convertRequest
	}
	if err := parseJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	axis := body.Axis.axis()
	if body.Axis.Preset != "" {
		preset, ok := domain.LookupPreset(body.Axis.Preset)
		if !ok {
			writeError(w, http.StatusBadRequest, app.ErrUnknownPreset)
			return
		}
		axis = preset
	}

	out, err := app.ConvertAdHoc(axis, body.Direction, body.Values)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
