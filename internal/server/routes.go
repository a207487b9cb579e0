package server

import (
	"encoding/json"
	"net/http"

	"github.com/zsiec/timecode/pkg/version"
)

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if err := s.writeJSON(w, http.StatusOK, version.GetInfo()); err != nil {
		s.logger.WithError(err).Error("Failed to encode version response")
	}
}

// DebugInfo describes how the server is configured.
type DebugInfo struct {
	Ports       map[string]int  `json:"ports"`
	Protocols   map[string]bool `json:"protocols"`
	RateLimited bool            `json:"rate_limited"`
	RedisCache  bool            `json:"redis_cache"`
	Version     version.Info    `json:"version"`
}

func (s *Server) handleDebugInfo(w http.ResponseWriter, r *http.Request) {
	info := DebugInfo{
		Ports: map[string]int{
			"http":  s.config.HTTPPort,
			"http3": s.config.HTTP3Port,
		},
		Protocols: map[string]bool{
			"http11": true,
			"http3":  s.config.EnableHTTP3,
		},
		RateLimited: s.limiter != nil,
		RedisCache:  s.redis != nil,
		Version:     version.GetInfo(),
	}
	if err := s.writeJSON(w, http.StatusOK, info); err != nil {
		s.logger.WithError(err).Error("Failed to encode debug info")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}
