// Package wodv1 defines the wire contract of the wodcal.v1.WodCalendar gRPC service.
//
// Messages are plain Go structs carried by the JSON codec registered in codec.go;
// the service descriptor and client stub in service.go are written against
// grpc's public API.
package wodv1

import "google.golang.org/protobuf/types/known/timestamppb"

// --- Auth ---

type RegisterRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

func (x *RegisterRequest) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

func (x *RegisterRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

type RegisterResponse struct {
	UserID string `json:"user_id,omitempty"`
}

func (x *RegisterResponse) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

func (x *LoginRequest) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

func (x *LoginRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

type LoginResponse struct {
	AccessToken string                 `json:"access_token,omitempty"`
	ExpiresAt   *timestamppb.Timestamp `json:"expires_at,omitempty"`
	UserID      string                 `json:"user_id,omitempty"`
	Email       string                 `json:"email,omitempty"`
}

func (x *LoginResponse) GetAccessToken() string {
	if x != nil {
		return x.AccessToken
	}
	return ""
}

func (x *LoginResponse) GetExpiresAt() *timestamppb.Timestamp {
	if x != nil {
		return x.ExpiresAt
	}
	return nil
}

func (x *LoginResponse) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

func (x *LoginResponse) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

// --- Entries ---

type Section struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Entry struct {
	ID        string                 `json:"id,omitempty"`
	Date      string                 `json:"date,omitempty"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	Sections  []*Section             `json:"sections"`
	// UpdatedAt travels as {"seconds":..,"nanos":..}, the field layout of
	// google.protobuf.Timestamp, so a protojson peer reads the same numbers.
	UpdatedAt *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

func (x *Entry) GetID() string {
	if x != nil {
		return x.ID
	}
	return ""
}

func (x *Entry) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

func (x *Entry) GetSections() []*Section {
	if x != nil {
		return x.Sections
	}
	return nil
}

func (x *Entry) GetUpdatedAt() *timestamppb.Timestamp {
	if x != nil {
		return x.UpdatedAt
	}
	return nil
}

// ListEntriesRequest lists every entry of the caller, or only those on Date when set.
type ListEntriesRequest struct {
	Date string `json:"date,omitempty"`
}

func (x *ListEntriesRequest) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

type ListEntriesResponse struct {
	Entries []*Entry `json:"entries"`
}

func (x *ListEntriesResponse) GetEntries() []*Entry {
	if x != nil {
		return x.Entries
	}
	return nil
}

type GetEntryRequest struct {
	ID string `json:"id,omitempty"`
}

func (x *GetEntryRequest) GetID() string {
	if x != nil {
		return x.ID
	}
	return ""
}

type GetEntryResponse struct {
	Entry *Entry `json:"entry,omitempty"`
}

func (x *GetEntryResponse) GetEntry() *Entry {
	if x != nil {
		return x.Entry
	}
	return nil
}

type SaveEntryRequest struct {
	Entry *Entry `json:"entry,omitempty"`
}

func (x *SaveEntryRequest) GetEntry() *Entry {
	if x != nil {
		return x.Entry
	}
	return nil
}

type SaveEntryResponse struct {
	Entry *Entry `json:"entry,omitempty"`
}

func (x *SaveEntryResponse) GetEntry() *Entry {
	if x != nil {
		return x.Entry
	}
	return nil
}

type DeleteEntryRequest struct {
	ID string `json:"id,omitempty"`
}

func (x *DeleteEntryRequest) GetID() string {
	if x != nil {
		return x.ID
	}
	return ""
}

type DeleteEntryResponse struct{}

// --- AI import ---

// ParseContentRequest carries raw text for text-like media types and a
// data URL ("data:<mime>;base64,...") for everything else.
type ParseContentRequest struct {
	Content   string `json:"content,omitempty"`
	MediaType string `json:"media_type,omitempty"`
}

func (x *ParseContentRequest) GetContent() string {
	if x != nil {
		return x.Content
	}
	return ""
}

func (x *ParseContentRequest) GetMediaType() string {
	if x != nil {
		return x.MediaType
	}
	return ""
}

type ImportSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ParseContentResponse struct {
	Title    string           `json:"title,omitempty"`
	Sections []*ImportSection `json:"sections"`
}

func (x *ParseContentResponse) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

func (x *ParseContentResponse) GetSections() []*ImportSection {
	if x != nil {
		return x.Sections
	}
	return nil
}

type GenerateWodRequest struct {
	Prompt string `json:"prompt,omitempty"`
}

func (x *GenerateWodRequest) GetPrompt() string {
	if x != nil {
		return x.Prompt
	}
	return ""
}

type GenerateWodResponse struct {
	Text string `json:"text,omitempty"`
}

func (x *GenerateWodResponse) GetText() string {
	if x != nil {
		return x.Text
	}
	return ""
}
