package model

// Team represents which side a player is on.
type Team int

const (
	TeamNone    Team = 0
	TeamMarines Team = 1
	TeamAliens  Team = 2
)

func (t Team) String() string {
	switch t {
	case TeamMarines:
		return "Marines"
	case TeamAliens:
		return "Aliens"
	default:
		return "None"
	}
}

// PlayerID is the stable Steam account id NS2 records for every player.
type PlayerID int64

// PlayerClass is the lifeform or role a player had when an event happened.
type PlayerClass string

const (
	ClassCommander PlayerClass = "Commander"
	ClassDead      PlayerClass = "Dead"
	ClassSkulk     PlayerClass = "Skulk"
	ClassGorge     PlayerClass = "Gorge"
	ClassLerk      PlayerClass = "Lerk"
	ClassFade      PlayerClass = "Fade"
	ClassOnos      PlayerClass = "Onos"
	ClassRifle     PlayerClass = "Rifle"
	ClassExo       PlayerClass = "Exo"
)

// ---- Raw round records as written by the NS2 server stats mod ----

// MatchRecord is one completed round.
type MatchRecord struct {
	KillFeed    []KillEvent             `json:"KillFeed"`
	PlayerStats map[PlayerID]PlayerStat `json:"PlayerStats"`
	RoundInfo   RoundInfo               `json:"RoundInfo"`
	ServerInfo  ServerInfo              `json:"ServerInfo"`
}

// KillEvent is a single entry of the kill feed.
type KillEvent struct {
	KillerWeapon  string       `json:"killerWeapon"`
	KillerSteamID *PlayerID    `json:"killerSteamID"` // nil for world/structure kills
	KillerClass   *PlayerClass `json:"killerClass"`
	KillerTeam    Team         `json:"killerTeamNumber"`
	VictimSteamID PlayerID     `json:"victimSteamID"`
	VictimClass   PlayerClass  `json:"victimClass"`
	GameTime      float64      `json:"gameTime"` // seconds since round start
}

// PlayerStat is one player's record for a round, split by side.
type PlayerStat struct {
	Marines    TeamStats `json:"1"`
	Aliens     TeamStats `json:"2"`
	PlayerName string    `json:"playerName"`
	LastTeam   Team      `json:"lastTeam"`
	HiveSkill  uint32    `json:"hiveSkill"`
	IsRookie   bool      `json:"isRookie"`
}

// Side returns the stats recorded for the given team.
func (p *PlayerStat) Side(t Team) TeamStats {
	if t == TeamAliens {
		return p.Aliens
	}
	return p.Marines
}

// TeamStats holds a player's counters while playing on one side.
type TeamStats struct {
	Kills           uint32  `json:"kills"`
	Deaths          uint32  `json:"deaths"`
	Assists         uint32  `json:"assists"`
	Score           uint32  `json:"score"`
	Hits            uint32  `json:"hits"`
	OnosHits        uint32  `json:"onosHits"`
	Misses          uint32  `json:"misses"`
	Killstreak      uint32  `json:"killstreak"`
	TimePlayed      float64 `json:"timePlayed"`    // seconds
	TimeBuilding    float64 `json:"timeBuilding"`  // seconds
	CommanderTime   float64 `json:"commanderTime"` // seconds
	PlayerDamage    float64 `json:"playerDamage"`
	StructureDamage float64 `json:"structureDamage"`
}

type RoundInfo struct {
	RoundDate      int64   `json:"roundDate"` // unix seconds
	RoundLength    float64 `json:"roundLength"`
	MapName        string  `json:"mapName"`
	WinningTeam    Team    `json:"winningTeam"`
	MaxPlayers1    uint32  `json:"maxPlayers1"`
	MaxPlayers2    uint32  `json:"maxPlayers2"`
	TournamentMode bool    `json:"tournamentMode"`
}

type ServerInfo struct {
	Name        string `json:"name"`
	IP          string `json:"ip"`
	Port        uint16 `json:"port"`
	Slots       uint32 `json:"slots"`
	BuildNumber uint32 `json:"buildNumber"`
	RookieOnly  bool   `json:"rookieOnly"`
}
