package smallsprite

import (
	"crypto/sha1"
	"database/sql"
	"fmt"

	"github.com/MrRaffo/smallsprite/palette"
	"github.com/MrRaffo/smallsprite/sprite"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	errNoLibrary     = errors.New("smallsprite: no library open")
	errNoEntry       = errors.New("smallsprite: no such library entry")
	errCorruptRecord = errors.New("smallsprite: corrupt library entry")
)

// Entry is a sprite kept in a Library together with the main palette
// indices of the user palette it was drawn with.
type Entry struct {
	ID      string
	Pixels  [sprite.Size]uint8
	Palette palette.UserPalette
}

func (e *Entry) sum() string {
	h := sha1.New()
	h.Write(e.Pixels[:])
	h.Write(e.Palette[:])
	return fmt.Sprintf("%X", h.Sum(nil))
}

// Library is a SQLite database of sprites shared between projects.
type Library struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLibrary opens or creates the library in file.
func NewLibrary(file string, logger *zap.Logger) (*Library, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sprite (id TEXT PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, pixels BLOB NOT NULL, palette BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Library{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Put stores e and returns its identifier. Storing the same pixels and
// palette twice returns the identifier of the first copy.
func (l *Library) Put(e *Entry) (string, error) {
	sha := e.sum()

	var id string
	switch err := l.db.QueryRow("SELECT id FROM sprite WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		id = uuid.NewString()
		if _, err := l.db.Exec("INSERT INTO sprite (id, sha1, pixels, palette) VALUES (?, ?, ?, ?)", id, sha, e.Pixels[:], e.Palette[:]); err != nil {
			return "", err
		}
		l.logger.Debug("stored sprite", zap.String("id", id), zap.String("sha1", sha))
		return id, nil
	case nil:
		return id, nil
	default:
		return "", err
	}
}

// Get returns the entry with identifier id, or nil if there isn't one.
func (l *Library) Get(id string) (*Entry, error) {
	var pixels, slots []byte
	switch err := l.db.QueryRow("SELECT pixels, palette FROM sprite WHERE id = ?", id).Scan(&pixels, &slots); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		if len(pixels) != sprite.Size || len(slots) != palette.UserSize {
			return nil, errors.Wrapf(errCorruptRecord, "entry %s", id)
		}
		e := &Entry{ID: id}
		copy(e.Pixels[:], pixels)
		copy(e.Palette[:], slots)
		return e, nil
	default:
		return nil, err
	}
}

// IDs returns the identifier of every entry in the library.
func (l *Library) IDs() ([]string, error) {
	rows, err := l.db.Query("SELECT id FROM sprite ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Stash puts sprite i into lib along with its user palette. A dangling
// palette reference is stashed as an all zero palette.
func (p *Project) Stash(lib *Library, i int) (string, error) {
	if lib == nil {
		return "", errNoLibrary
	}
	sp, ok := p.Sprites.Sprite(i)
	if !ok {
		return "", errNoSprite
	}
	e := &Entry{Pixels: sp.Pixels}
	e.Palette, _ = p.Palettes.UserPalette(sp.PaletteRef)
	return lib.Put(e)
}

// Unstash appends the library entry id to the project as a new sprite and
// returns its index.
func (p *Project) Unstash(lib *Library, id string) (int, error) {
	if lib == nil {
		return -1, errNoLibrary
	}
	e, err := lib.Get(id)
	if err != nil {
		return -1, err
	}
	if e == nil {
		return -1, errors.Wrapf(errNoEntry, "entry %s", id)
	}
	return p.addSprite(e.Pixels, e.Palette)
}
