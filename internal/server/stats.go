package server

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/game/room"
)

// StatusResponse GET / 的响应
type StatusResponse struct {
	Status  string `json:"status"`
	Rooms   int    `json:"rooms"`
	Games   int    `json:"games"`
	Players int    `json:"players"`
}

// StatsResponse GET /stats 的响应
type StatsResponse struct {
	Rooms []room.Status `json:"rooms"`
}

// handleStatus 服务概况
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, StatusResponse{
		Status:  "ok",
		Rooms:   s.roomManager.GetRoomCount(),
		Games:   s.roomManager.GetActiveGamesCount(),
		Players: s.GetOnlineCount(),
	})
}

// handleStats 每个房间的公开状态，不含手牌
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	rooms := s.roomManager.Rooms()
	resp := StatsResponse{Rooms: make([]room.Status, 0, len(rooms))}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, r.Status())
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("写入响应失败")
	}
}
