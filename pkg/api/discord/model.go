package discord

type Member struct {
	ID       string
	Username string
	Nick     string
	Avatar   string
	Roles    []string
}

type Role struct {
	ID          string
	Name        string
	Permissions string
}

type Channel struct {
	ID       string
	Name     string
	Type     int
	ParentID string
	Position int
}

// Permission overwrite target types, as defined by the Discord API.
const (
	OverwriteRole   = 0
	OverwriteMember = 1
)

type PermissionOverwrite struct {
	ID    string `json:"id"`
	Type  int    `json:"type"`
	Allow string `json:"allow"`
	Deny  string `json:"deny"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

type Message struct {
	ID        string
	ChannelID string
}
