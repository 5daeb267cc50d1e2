package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/isnorttestingpipelines/txm-web/internal/executor"
	"github.com/isnorttestingpipelines/txm-web/internal/trading"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Auth and session

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("email and password are required"))
		return
	}

	sess, err := s.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		s.logger.Warn("login failed", "email", payload.Email, "error", err)
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	s.sessions.Login(sess)

	// A found license key becomes the session API key. License lookup
	// failures do not fail the login.
	if license, err := s.auth.GetLicense(r.Context(), sess.Email); err != nil {
		s.logger.Warn("license lookup failed", "email", sess.Email, "error", err)
	} else if license != nil && license.Key != "" {
		s.sessions.AttachAPIKey(license.Key)
	}

	writeJSON(w, http.StatusOK, s.sessions.Current())
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": s.sessions.IsAuthenticated(),
		"session":       s.sessions.Current(),
	})
}

type apiKeyPayload struct {
	APIKey string `json:"api_key"`
}

func (s *Server) handleAttachAPIKey(w http.ResponseWriter, r *http.Request) {
	var payload apiKeyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if payload.APIKey == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("api_key is required"))
		return
	}
	s.sessions.AttachAPIKey(payload.APIKey)
	writeJSON(w, http.StatusOK, s.sessions.Current())
}

func (s *Server) handleSetupStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"complete": s.sessions.SetupComplete()})
}

func (s *Server) handleSetupComplete(w http.ResponseWriter, r *http.Request) {
	s.sessions.MarkSetupComplete()
	writeJSON(w, http.StatusOK, map[string]bool{"complete": true})
}

// Quotes

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	quote := s.source.FetchQuote(r.Context(), symbol)
	s.store.UpsertQuote(quote)
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleIntraday(w http.ResponseWriter, r *http.Request) {
	series := s.source.Intraday(r.Context(), r.PathValue("symbol"))
	writeRaw(w, series)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	series := s.source.Daily(r.Context(), r.PathValue("symbol"))
	writeRaw(w, series)
}

func writeRaw(w http.ResponseWriter, series json.RawMessage) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if series == nil {
		w.Write([]byte("null"))
		return
	}
	w.Write(series)
}

// Watchlist

type watchlistPayload struct {
	Symbol string `json:"symbol"`
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Watchlist())
}

func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	var payload watchlistPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if payload.Symbol == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("symbol is required"))
		return
	}
	s.store.AddToWatchlist(payload.Symbol)
	writeJSON(w, http.StatusOK, s.store.Watchlist())
}

func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveFromWatchlist(r.PathValue("symbol"))
	writeJSON(w, http.StatusOK, s.store.Watchlist())
}

// Selection

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.SelectedInstrument())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	// The body is either a quote or literal null to clear. The selected
	// quote is not required to exist in the quote map.
	var quote *trading.Quote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.store.SelectInstrument(quote)
	writeJSON(w, http.StatusOK, s.store.SelectedInstrument())
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.store.SelectInstrument(nil)
	w.WriteHeader(http.StatusNoContent)
}

// Portfolio and orders

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := s.executor.RefreshPortfolio(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolio)
}

type orderPayload struct {
	Symbol   string  `json:"symbol"`
	Side     string  `json:"side"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var payload orderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	order, err := s.executor.PlaceOrder(r.Context(), payload.Symbol, payload.Quantity, payload.Price, trading.Side(payload.Side))
	if err != nil {
		if errors.Is(err, executor.ErrInvalidOrder) {
			writeError(w, http.StatusBadRequest, err)
		} else {
			writeError(w, http.StatusBadGateway, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	result, err := s.executor.CancelOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
