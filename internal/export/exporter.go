// Package export bundles favorited assets into a portable archive, the
// "later export" the favorites flow exists for.
package export

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/antoniostano/voicelab/internal/assets"
	"github.com/antoniostano/voicelab/internal/observability"
)

var ErrNoFavorites = errors.New("no favorites to export")

// S3Config points the exporter at an S3-compatible bucket. A zero value
// disables the upload step; archives then stay local.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

func (c S3Config) enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Archive describes one completed export.
type Archive struct {
	Path      string `json:"path"`
	Files     int    `json:"files"`
	SizeBytes int64  `json:"size_bytes"`
	UploadURL string `json:"upload_url,omitempty"`
}

// Exporter writes favorites archives under dir and optionally uploads them.
type Exporter struct {
	store   *assets.Store
	dir     string
	s3      *minio.Client
	cfg     S3Config
	metrics *observability.Metrics
	log     *zap.SugaredLogger
}

func New(store *assets.Store, dir string, cfg S3Config, metrics *observability.Metrics, log *zap.SugaredLogger) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	e := &Exporter{store: store, dir: dir, cfg: cfg, metrics: metrics, log: log}
	if cfg.enabled() {
		client, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: true,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 client: %w", err)
		}
		e.s3 = client
	}
	return e, nil
}

// ExportFavorites zips every favorited audio file together with its sidecar
// (synthesized from the filename when the sidecar is missing) and uploads
// the archive when S3 is configured. Favorited filenames with no audio on
// disk are skipped, not fatal.
func (e *Exporter) ExportFavorites(ctx context.Context) (Archive, error) {
	archive, err := e.exportFavorites(ctx)
	switch {
	case err == nil:
		e.metrics.ExportsTotal.WithLabelValues("success").Inc()
	case errors.Is(err, ErrNoFavorites):
		e.metrics.ExportsTotal.WithLabelValues("empty").Inc()
	default:
		e.metrics.ExportsTotal.WithLabelValues("error").Inc()
	}
	return archive, err
}

func (e *Exporter) exportFavorites(ctx context.Context) (Archive, error) {
	favorites := e.store.Favorites()
	if len(favorites) == 0 {
		return Archive{}, ErrNoFavorites
	}

	name := fmt.Sprintf("favorites_%s.zip", time.Now().Format("2006-01-02_150405"))
	path := filepath.Join(e.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return Archive{}, fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	included := 0
	for _, filename := range favorites {
		audioPath, err := e.store.AudioPath(filename)
		if errors.Is(err, assets.ErrAssetNotFound) {
			e.log.Warnw("favorite missing on disk, skipping", "filename", filename)
			continue
		}
		if err != nil {
			return Archive{}, err
		}
		if err := addFile(zw, filename, audioPath); err != nil {
			return Archive{}, err
		}
		meta, err := e.store.ReadMetadata(filename)
		if err != nil {
			return Archive{}, err
		}
		stem := strings.TrimSuffix(filename, filepath.Ext(filename))
		if err := addText(zw, stem+".txt", meta); err != nil {
			return Archive{}, err
		}
		included++
	}
	if err := zw.Close(); err != nil {
		return Archive{}, fmt.Errorf("finalize archive: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Archive{}, fmt.Errorf("stat archive: %w", err)
	}
	out := Archive{Path: path, Files: included, SizeBytes: info.Size()}

	if e.s3 != nil {
		url, err := e.upload(ctx, name, path, info.Size())
		if err != nil {
			return Archive{}, err
		}
		out.UploadURL = url
	}
	return out, nil
}

func (e *Exporter) upload(ctx context.Context, key, path string, size int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	_, err = e.s3.PutObject(ctx, e.cfg.Bucket, key, f, size, minio.PutObjectOptions{
		ContentType: "application/zip",
	})
	if err != nil {
		return "", fmt.Errorf("upload archive: %w", err)
	}
	return fmt.Sprintf("https://%s/%s/%s", e.cfg.Endpoint, e.cfg.Bucket, key), nil
}

func addFile(zw *zip.Writer, name, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()
	dst, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	return nil
}

func addText(zw *zip.Writer, name, contents string) error {
	dst, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	if _, err := io.WriteString(dst, contents); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	return nil
}
