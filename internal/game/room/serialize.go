package room

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/game/session"
	"github.com/palemoky/bisca/internal/server/storage"
)

const storeTimeout = 5 * time.Second

// ToRoomData 将房间转换为可序列化的快照
func (r *Room) ToRoomData() *storage.RoomData {
	snap := r.session.Snapshot()

	data := &storage.RoomData{
		Code:       r.Code,
		Phase:      snap.Phase.String(),
		Private:    r.Private,
		Players:    make([]storage.PlayerData, 0, 2),
		DeckCount:  snap.DeckCount,
		Automated:  snap.Automated,
		Generation: snap.Generation,
		CreatedAt:  r.CreatedAt.Unix(),
		UpdatedAt:  time.Now().Unix(),
	}
	if snap.Phase != session.PhaseWaiting {
		data.TrumpSuit = snap.TrumpSuit.String()
	}

	for _, seat := range session.Seats {
		occ := snap.Seats[seat]
		if occ == nil {
			continue
		}
		data.Players = append(data.Players, storage.PlayerData{
			ID:     occ.ID,
			Name:   occ.Name,
			Seat:   seat.Number(),
			Bot:    occ.Bot,
			Points: snap.Points[seat],
		})
	}
	return data
}

// Status 房间状态，用于 /stats
type Status struct {
	RoomID  string         `json:"room_id"`
	Phase   string         `json:"phase"`
	Private bool           `json:"private"`
	Players []PlayerStatus `json:"players"`
	Scores  [2]int         `json:"scores"`
}

// PlayerStatus 座位状态
type PlayerStatus struct {
	Seat  int    `json:"seat"`
	Name  string `json:"name"`
	IsBot bool   `json:"is_bot"`
}

// Status 可公开的房间摘要，从不包含手牌
func (r *Room) Status() Status {
	snap := r.session.Snapshot()
	st := Status{
		RoomID:  r.Code,
		Phase:   snap.Phase.String(),
		Private: r.Private,
		Players: []PlayerStatus{},
		Scores:  snap.Points,
	}
	for _, seat := range session.Seats {
		if occ := snap.Seats[seat]; occ != nil {
			st.Players = append(st.Players, PlayerStatus{Seat: seat.Number(), Name: occ.Name, IsBot: occ.Bot})
		}
	}
	return st
}

// save writes the snapshot in the background. Snapshots are for
// observation only; a failed write never affects play.
func (r *Room) save() {
	if r.store == nil {
		return
	}
	data := r.ToRoomData()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := r.store.SaveRoom(ctx, data); err != nil {
			log.WithField("room", r.Code).WithError(err).Warn("⚠️ 保存房间快照失败")
		}
	}()
}

func (r *Room) deleteSnapshot() {
	if r.store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := r.store.DeleteRoom(ctx, r.Code); err != nil {
			log.WithField("room", r.Code).WithError(err).Warn("⚠️ 删除房间快照失败")
		}
	}()
}

// record 终局结果写排行榜和历史
func (r *Room) record(over session.GameOver, occupants [2]*session.Occupant) {
	if r.recorder == nil {
		return
	}

	rec := &storage.MatchRecord{
		RoomID:    r.Code,
		ScoreA:    over.Scores[session.SeatA],
		ScoreB:    over.Scores[session.SeatB],
		Automated: r.session.Automated(),
		EndedAt:   time.Now(),
	}
	if !over.Outcome.Draw {
		rec.Winner = over.Outcome.Winner.Number()
	}
	if a := occupants[session.SeatA]; a != nil {
		rec.PlayerAID, rec.PlayerAName, rec.PlayerABot = a.ID, a.Name, a.Bot
	}
	if b := occupants[session.SeatB]; b != nil {
		rec.PlayerBID, rec.PlayerBName, rec.PlayerBBot = b.ID, b.Name, b.Bot
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := r.recorder.RecordMatch(ctx, rec); err != nil {
			log.WithField("room", r.Code).WithError(err).Warn("⚠️ 记录对局结果失败")
		}
	}()
}
