package smallsprite

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/MrRaffo/smallsprite/image"
	"github.com/MrRaffo/smallsprite/palette"
	"github.com/MrRaffo/smallsprite/sprite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const scanWorkers = 4

var errWalkCancelled = errors.New("smallsprite: walk cancelled")

type decoded struct {
	file   string
	pixels [sprite.Size]uint8
	slots  palette.UserPalette
}

func isImage(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png", ".gif", ".jpg", ".jpeg":
		return true
	}
	return false
}

func findImages(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errWalkCancelled
			}

			return nil
		})
	}()
	return out, errc
}

func (p *Project) decodeWorker(ctx context.Context, in <-chan string, out chan<- decoded) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			f, err := os.Open(file)
			if err != nil {
				errc <- err
				return
			}
			px, up, err := image.Decode(f)
			f.Close()
			if err != nil {
				// Not every image is sprite sized
				p.logger.Info("skipping image", zap.String("file", file), zap.Error(err))
				continue
			}
			select {
			case out <- decoded{file: file, pixels: px, slots: up}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc
}

// waitForPipeline drains every stage and returns the first error, preferring
// the error that caused a cancellation over the cancellation itself.
func waitForPipeline(errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		switch {
		case err == nil:
		case first == nil, errors.Is(first, errWalkCancelled) && !errors.Is(err, errWalkCancelled):
			first = err
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ImportDir imports every sprite sized image found under dir, in path order,
// and returns the indices of the new sprites. Images are decoded
// concurrently; the stores are only touched from the calling goroutine.
// Images that can't be imported are skipped.
func (p *Project) ImportDir(dir string) ([]int, error) {
	base, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	files, errc := findImages(ctx, base)
	errcList := []<-chan error{errc}

	results := make(chan decoded)
	var wg sync.WaitGroup
	wg.Add(scanWorkers)
	for i := 0; i < scanWorkers; i++ {
		errc := p.decodeWorker(ctx, files, results)
		done := make(chan error, 1)
		go func() {
			defer wg.Done()
			defer close(done)
			for err := range errc {
				cancelFunc()
				done <- err
			}
		}()
		errcList = append(errcList, done)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var images []decoded
	for r := range results {
		images = append(images, r)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	sort.Slice(images, func(i, j int) bool { return images[i].file < images[j].file })

	added := make([]int, 0, len(images))
	for _, m := range images {
		i, err := p.addSprite(m.pixels, m.slots)
		if err != nil {
			return added, errors.Wrapf(err, "import %s", m.file)
		}
		added = append(added, i)
	}

	p.logger.Info("imported directory", zap.String("dir", base), zap.Int("sprites", len(added)))

	return added, nil
}
