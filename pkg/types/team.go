// Package types defines the core data structures for the TeamLens analytics
// backend. These types mirror the JSON export produced by the team-collaboration
// experiment platform: one human owner plus AI agents per team, with chat logs,
// generated ideas, and evaluations. Several fields arrive double-encoded
// (JSON strings inside JSON) and are therefore kept as json.RawMessage here;
// the analysis package resolves them with tolerant defaults.
package types

import "encoding/json"

// Relationship type constants used in the organizational network.
const (
	RelSupervisor = "SUPERVISOR"
	RelPeer       = "PEER"
)

// SelfMarker is the literal token participants use to refer to themselves
// in relationships, node positions, and message senders.
const SelfMarker = "나"

// AgentIDPrefix is the prefix of machine-generated agent identifiers.
const AgentIDPrefix = "agent_"

// Team is one team record from the experiment export: the unit of analysis.
type Team struct {
	TeamID      string            `json:"team_id"`
	OwnerInfo   Profile           `json:"owner_info"`
	TeamInfo    TeamInfo          `json:"team_info"`
	Agents      []Agent           `json:"agents"`
	Ideas       []json.RawMessage `json:"ideas"`       // each element: Idea, possibly JSON-encoded as a string
	Chat        []json.RawMessage `json:"chat"`        // each element: chat event, possibly JSON-encoded as a string
	Evaluations []json.RawMessage `json:"evaluations"` // team-level evaluations, rarely populated
}

// TeamInfo carries team metadata. Members, Relationships, and NodePositions
// are JSON encoded as strings in most records and as plain arrays/objects in
// some; both forms must be accepted.
type TeamInfo struct {
	TeamName          string          `json:"teamName,omitempty"`
	Name              string          `json:"name,omitempty"` // legacy alias for TeamName
	Topic             string          `json:"topic,omitempty"`
	OwnerID           string          `json:"ownerId,omitempty"`
	CreatedAt         string          `json:"createdAt,omitempty"`
	SharedMentalModel string          `json:"sharedMentalModel,omitempty"`
	Members           json.RawMessage `json:"members,omitempty"`
	Relationships     json.RawMessage `json:"relationships,omitempty"`
	NodePositions     json.RawMessage `json:"nodePositions,omitempty"`
}

// DisplayName returns the team name, preferring the current field over the
// legacy alias.
func (ti TeamInfo) DisplayName() string {
	if ti.TeamName != "" {
		return ti.TeamName
	}
	return ti.Name
}

// Profile is the shared attribute shape for both the human owner
// (owner_info) and AI agents (agent_info). All fields are free text and
// optional; the vectorizer and role classifier tolerate any of them missing.
type Profile struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Age          string `json:"age,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Nationality  string `json:"nationality,omitempty"`
	Major        string `json:"major,omitempty"`
	Education    string `json:"education,omitempty"`
	Professional string `json:"professional,omitempty"`
	Skills       string `json:"skills,omitempty"`
	Personality  string `json:"personality,omitempty"`
	Preferences  string `json:"preferences,omitempty"`
	Dislikes     string `json:"dislikes,omitempty"`
	WorkStyle    string `json:"workStyle,omitempty"`
}

// Agent is one AI team member.
type Agent struct {
	AgentID   string   `json:"agentId"`
	NodeKey   string   `json:"node_key,omitempty"`
	IsLeader  bool     `json:"isLeader,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	AgentInfo Profile  `json:"agent_info"`
}

// Member is one entry of the decoded team_info.members array. The human
// member has IsUser set and may carry a self-described UserProfile.
type Member struct {
	IsUser      bool     `json:"isUser,omitempty"`
	IsLeader    bool     `json:"isLeader,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	AgentID     string   `json:"agentId,omitempty"`
	UserProfile *Profile `json:"userProfile,omitempty"`
}

// Relationship is one edge of the decoded organizational network.
type Relationship struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"` // RelSupervisor or RelPeer
}

// Position is a node coordinate from the decoded nodePositions map.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Team activity role labels as stored in member/agent role lists.
const (
	RoleLabelGenerate = "아이디어 생성하기"
	RoleLabelEvaluate = "아이디어 평가하기"
	RoleLabelFeedback = "피드백하기"
	RoleLabelRequest  = "요청하기"
)
