package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// FindMatchPayload 快速匹配请求
type FindMatchPayload struct {
	Name string `json:"name,omitempty"` // 为空时沿用连接昵称
}

// CreatePrivateRoomPayload 创建私人房间请求
type CreatePrivateRoomPayload struct {
	Name string `json:"name,omitempty"`
}

// JoinPrivateRoomPayload 加入私人房间请求
type JoinPrivateRoomPayload struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name,omitempty"`
}

// PlayCardPayload 出牌请求
type PlayCardPayload struct {
	CardID string `json:"card_id"` // 例如 "7♠"
}

// GetLeaderboardPayload 获取排行榜请求
type GetLeaderboardPayload struct {
	Type   string `json:"type"`   // total/daily/weekly
	Offset int    `json:"offset"` // 偏移量
	Limit  int    `json:"limit"`  // 数量
}

// GetHistoryPayload 最近对局请求
type GetHistoryPayload struct {
	Limit int `json:"limit"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// OnlineCountPayload 在线人数
type OnlineCountPayload struct {
	Count int `json:"count"`
}

// JoinedRoomPayload 入座成功
type JoinedRoomPayload struct {
	RoomID    string `json:"room_id"`
	Seat      int    `json:"seat"`       // 1 或 2
	SeatCount int    `json:"seat_count"` // 当前已入座人数
}

// PrivateRoomCreatedPayload 私人房间已创建
type PrivateRoomCreatedPayload struct {
	RoomID string `json:"room_id"`
}

// WaitingPayload 等待对手
type WaitingPayload struct {
	RoomID string `json:"room_id"`
}

// GameStatePayload is one seat's view of the table.
type GameStatePayload struct {
	RoomID            string     `json:"room_id"`
	Phase             string     `json:"phase"`
	MySeat            int        `json:"my_seat"`
	MyName            string     `json:"my_name"`
	OpponentName      string     `json:"opponent_name"`
	OpponentIsBot     bool       `json:"opponent_is_bot"`
	MyHand            []CardInfo `json:"my_hand"`
	OpponentCardCount int        `json:"opponent_card_count"`
	MyPoints          int        `json:"my_points"`
	OpponentPoints    int        `json:"opponent_points"`
	TrumpCard         *CardInfo  `json:"trump_card,omitempty"`
	TrumpSuit         string     `json:"trump_suit"`
	DeckCount         int        `json:"deck_count"`
	MyTableCard       *CardInfo  `json:"my_table_card,omitempty"`
	OpponentTableCard *CardInfo  `json:"opponent_table_card,omitempty"`
	IAmLead           bool       `json:"i_am_lead"`
	LeadSeat          int        `json:"lead_seat"` // 0 表示本墩还没人出牌
	IsMyTurn          bool       `json:"is_my_turn"`
	Result            string     `json:"result"` // victory/defeat/draw，未结束为空
}

// GameStartedPayload 开局
type GameStartedPayload struct {
	State GameStatePayload `json:"state"`
}

// CardPlayedPayload 出牌通知
type CardPlayedPayload struct {
	State GameStatePayload `json:"state"`
	Seat  int              `json:"seat"`
	Card  CardInfo         `json:"card"`
}

// TrickCard 一墩里某个座位出的牌
type TrickCard struct {
	Seat int      `json:"seat"`
	Card CardInfo `json:"card"`
}

// TrickResultPayload 一墩结算
type TrickResultPayload struct {
	WinnerSeat int         `json:"winner_seat"`
	WinnerName string      `json:"winner_name"`
	Points     int         `json:"points"`
	Cards      []TrickCard `json:"cards"` // 先出的在前
	Scores     [2]int      `json:"scores"`
}

// CardsDrawnPayload 补牌后的视图，DrawnCard 是自己摸到的牌
type CardsDrawnPayload struct {
	State     GameStatePayload `json:"state"`
	DrawnCard *CardInfo        `json:"drawn_card,omitempty"`
}

// GameOverPayload 游戏结束通知
type GameOverPayload struct {
	WinnerSeat  int              `json:"winner_seat"` // 平局为 0
	Draw        bool             `json:"draw"`
	WinnerName  string           `json:"winner_name,omitempty"`
	FinalScores [2]int           `json:"final_scores"`
	State       GameStatePayload `json:"state"`
}

// NoticePayload 只带提示文本的通知
type NoticePayload struct {
	Message string `json:"message"`
}

// RematchRequestedPayload 对手请求再来一局
type RematchRequestedPayload struct {
	FromName string `json:"from_name"`
}

// ActionRejectedPayload 动作被拒绝
type ActionRejectedPayload struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// StatsResultPayload 个人统计结果
type StatsResultPayload struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	TotalGames    int     `json:"total_games"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Draws         int     `json:"draws"`
	WinRate       float64 `json:"win_rate"`
	TotalPoints   int     `json:"total_points"` // 累计牌分
	Score         int     `json:"score"`        // 排行积分
	Rank          int     `json:"rank"`
	CurrentStreak int     `json:"current_streak"`
	MaxWinStreak  int     `json:"max_win_streak"`
}

// LeaderboardResultPayload 排行榜结果
type LeaderboardResultPayload struct {
	Type    string             `json:"type"` // total/daily/weekly
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// HistoryResultPayload 最近对局
type HistoryResultPayload struct {
	Matches []MatchSummary `json:"matches"`
}

// MatchSummary 一局的摘要
type MatchSummary struct {
	RoomID    string `json:"room_id"`
	PlayerA   string `json:"player_a"`
	PlayerB   string `json:"player_b"`
	ScoreA    int    `json:"score_a"`
	ScoreB    int    `json:"score_b"`
	Winner    int    `json:"winner"` // 0 平局
	Automated bool   `json:"automated"`
	EndedAt   int64  `json:"ended_at"` // 毫秒
}

// ChatPayload 聊天消息
type ChatPayload struct {
	SenderID   string `json:"sender_id,omitempty"`   // 发送者 ID (服务端填充)
	SenderName string `json:"sender_name,omitempty"` // 发送者名字 (服务端填充)
	Content    string `json:"content"`               // 消息内容
	Time       int64  `json:"time,omitempty"`        // 发送时间 (服务端填充)
}

// --- 通用数据结构 ---

// CardInfo 牌信息
type CardInfo struct {
	ID    string `json:"id"`    // 点数 + 花色，如 "7♠"
	Suit  string `json:"suit"`  // ♥ ♦ ♣ ♠
	Rank  string `json:"rank"`  // 2 3 4 5 6 Q J K 7 A
	Value int    `json:"value"` // 牌分
	Power int    `json:"power"` // 同花比大小用，0-9
}
