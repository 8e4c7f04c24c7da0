/*
Package smallsprite is a library for editing small indexed-color sprites, the
palettes they are drawn with and the animations built from them.

A Project owns one store of each kind plus the animation preview player and
is persisted as a single binary file, see package project.
*/
package smallsprite

import (
	"os"

	"github.com/MrRaffo/smallsprite/anim"
	"github.com/MrRaffo/smallsprite/palette"
	"github.com/MrRaffo/smallsprite/project"
	"github.com/MrRaffo/smallsprite/sprite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Project is the complete editable state.
type Project struct {
	Sprites    *sprite.Store
	Palettes   *palette.Store
	Animations *anim.Store
	Player     *anim.Player

	logger *zap.Logger
}

// New returns a project with empty stores. Call Bootstrap or Load before
// using it.
func New(logger *zap.Logger) *Project {
	if logger == nil {
		logger = zap.NewNop()
	}
	animations := anim.New(logger.Named("anim"))
	return &Project{
		Sprites:    sprite.New(logger.Named("sprite")),
		Palettes:   palette.New(logger.Named("palette")),
		Animations: animations,
		Player:     anim.NewPlayer(animations, logger.Named("player")),
		logger:     logger,
	}
}

// Bootstrap fills any empty store with its minimal content: a blank sprite,
// an animation of that sprite and a palette.
func (p *Project) Bootstrap() {
	if p.Sprites.Len() == 0 {
		p.Sprites.AddSprite()
	}
	if p.Animations.Len() == 0 {
		p.Animations.AddAnimation()
	}
	if p.Palettes.Len() == 0 {
		p.Palettes.AddUserPalette()
	}
}

// Free releases the content of every store.
func (p *Project) Free() {
	p.Player.Stop()
	p.Sprites.Free()
	p.Animations.Free()
	p.Palettes.Free()
}

// File returns a snapshot of the stores ready for encoding.
func (p *Project) File() *project.File {
	f := &project.File{
		Sprites:    make([]*sprite.Sprite, p.Sprites.Len()),
		Animations: make([]*anim.Animation, p.Animations.Len()),
		Palettes:   make([]*palette.UserPalette, p.Palettes.Len()),
	}
	for i := range f.Sprites {
		f.Sprites[i], _ = p.Sprites.Sprite(i)
	}
	for i := range f.Animations {
		f.Animations[i], _ = p.Animations.Animation(i)
	}
	for i := range f.Palettes {
		if up, ok := p.Palettes.UserPalette(i); ok {
			f.Palettes[i] = &up
		}
	}
	return f
}

// Restore replaces the content of every store with f. Stores left empty by
// f are bootstrapped.
func (p *Project) Restore(f *project.File) {
	p.Free()
	for _, sp := range f.Sprites {
		if sp != nil {
			p.Sprites.Load(*sp)
		}
	}
	for _, a := range f.Animations {
		if a != nil {
			p.Animations.Load(*a)
		}
	}
	for _, up := range f.Palettes {
		if up != nil {
			p.Palettes.Load(*up)
		}
	}
	p.Bootstrap()
}

// Load replaces the project with the content of file. The file is decoded
// completely first so on any error the project is left untouched.
func (p *Project) Load(file string) error {
	fd, err := os.Open(file)
	if err != nil {
		return err
	}
	defer fd.Close()

	f, err := project.Decode(fd)
	if err != nil {
		return errors.Wrapf(err, "load %s", file)
	}

	if !f.Consistent() {
		p.logger.Warn("section offsets disagree with layout",
			zap.String("file", file),
			zap.Int32("animationOffset", f.Header.AnimationOffset),
			zap.Int32("paletteOffset", f.Header.PaletteOffset))
	}

	p.Restore(f)

	p.logger.Info("loaded project",
		zap.String("file", file),
		zap.Int("sprites", p.Sprites.Len()),
		zap.Int("animations", p.Animations.Len()),
		zap.Int("palettes", p.Palettes.Len()))

	return nil
}

// Open loads file into a new project, or bootstraps an empty one if the file
// can't be loaded. The boolean reports whether the file was loaded.
func Open(file string, logger *zap.Logger) (*Project, bool) {
	p := New(logger)
	if err := p.Load(file); err != nil {
		p.logger.Info("starting new project", zap.String("file", file), zap.Error(err))
		p.Bootstrap()
		return p, false
	}
	return p, true
}

// Save writes the project to file. If some records could not be written the
// rest of the file is still written and the error matches
// project.ErrPartialWrite.
func (p *Project) Save(file string) error {
	fd, err := os.Create(file)
	if err != nil {
		return err
	}

	f := p.File()
	werr := project.Encode(fd, f)
	if err := fd.Close(); err != nil && werr == nil {
		werr = err
	}
	if werr != nil {
		return errors.Wrapf(werr, "save %s", file)
	}

	p.logger.Info("saved project",
		zap.String("file", file),
		zap.Int32("sprites", f.Header.Sprites),
		zap.Int32("animations", f.Header.Animations),
		zap.Int32("palettes", f.Header.Palettes))

	return nil
}
