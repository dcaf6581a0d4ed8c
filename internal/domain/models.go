// Package domain defines the persistence models for comment lists, the
// per-device draw ledger, settings, messages, and rating images. These types
// are mapped with GORM and form the core data layer of the dispenser.
package domain

import "time"

// Message sides.
const (
	SideUser  = "user"
	SideAdmin = "admin"
)

// CommentList is a named pool of comments. The identifier is chosen by the
// administrator and is case-sensitive.
//
// Fields:
//   - ID: list identifier (primary key).
//   - Locked: when true, ordinary single draws are rejected.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type CommentList struct {
	ID        string    `json:"list_id"    gorm:"type:varchar(128);primaryKey"`
	Locked    bool      `json:"locked"     gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for CommentList.
func (CommentList) TableName() string { return "comment_lists" }

// Comment is a single record of a list. Its id is unique within the list only,
// so the primary key is (list_id, id).
//
// Fields:
//   - ListID / ID: composite primary key.
//   - Content: the text handed out on a draw.
//   - Used: flips false→true on a draw or bulk claim, back on reset.
//   - UsedAt: set when the record was claimed, cleared on reset.
//   - CreatedAt: insertion time; drives the "first" draw order.
//   - List: FK association, comments are removed with their list.
type Comment struct {
	ListID    string     `json:"-"                 gorm:"type:varchar(128);primaryKey;index:idx_comments_pool,priority:1"`
	ID        string     `json:"id"                gorm:"type:varchar(128);primaryKey"`
	Content   string     `json:"content"           gorm:"type:text;not null"`
	Used      bool       `json:"used"              gorm:"not null;default:false;index:idx_comments_pool,priority:2"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"        gorm:"index:idx_comments_pool,priority:3"`

	List CommentList `json:"-" gorm:"foreignKey:ListID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// DrawRecord is a History Ledger entry: the device has drawn from the list.
// The composite primary key is the storage-level guarantee that a device is
// served at most once per list.
//
// Fields:
//   - DeviceID / ListID: composite primary key.
//   - CommentID: id of the comment handed out.
//   - CreatedAt: time of the draw.
type DrawRecord struct {
	DeviceID  string    `json:"-"          gorm:"type:varchar(128);primaryKey"`
	ListID    string    `json:"list_id"    gorm:"type:varchar(128);primaryKey;index"`
	CommentID string    `json:"comment_id" gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `json:"created_at"`

	List CommentList `json:"-" gorm:"foreignKey:ListID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for DrawRecord.
func (DrawRecord) TableName() string { return "draw_records" }

// Setting is a small key/value row for server-side state that must survive
// restarts (bulk generator key, date of the last daily clear).
type Setting struct {
	Key       string    `gorm:"type:varchar(64);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName returns the database table name for Setting.
func (Setting) TableName() string { return "settings" }

// Message is one entry of the user↔admin channel. Thread is the sending
// device id for user messages; admin replies either target a device thread
// or the shared thread (empty string) seen by every device.
type Message struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Thread    string    `json:"thread"     gorm:"type:varchar(128);not null;default:'';index:idx_thread_msgs,priority:1"`
	Side      string    `json:"side"       gorm:"type:varchar(16);not null;check:side IN ('user','admin')"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	IsRead    bool      `json:"is_read"    gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_thread_msgs,priority:2"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// RatingImage is the metadata of an uploaded rating screenshot. The bytes
// live behind BlobRef in a blob store.
type RatingImage struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	UserName    string    `json:"user_name"    gorm:"type:varchar(128);not null;index"`
	DeviceID    string    `json:"device_id"    gorm:"type:varchar(128);not null;default:''"`
	ContentType string    `json:"content_type" gorm:"type:varchar(64);not null"`
	Size        int64     `json:"size"         gorm:"not null"`
	BlobRef     string    `json:"-"            gorm:"type:varchar(64);not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for RatingImage.
func (RatingImage) TableName() string { return "rating_images" }

// ImageBlob stores raw image bytes for the database-backed blob store.
type ImageBlob struct {
	Ref       string `gorm:"type:varchar(64);primaryKey"`
	Data      []byte `gorm:"not null"`
	CreatedAt time.Time
}

// TableName returns the database table name for ImageBlob.
func (ImageBlob) TableName() string { return "image_blobs" }
