// starmap-builder turns the upstream frontier dataset release into a
// compact starmap bundle.
//
// It queries the GitHub releases API for the latest release carrying a
// SQLite asset, downloads it, reads the SolarSystems and Jumps tables, and
// writes a zstd-compressed bundle plus a small JSON metadata file.
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
	_ "modernc.org/sqlite"

	"github.com/frontiermaps/starmap/pkg/core/starmap"
	"github.com/frontiermaps/starmap/pkg/persistence"
)

const userAgent = "starmap-builder/0.1"

type release struct {
	TagName string  `json:"tag_name"`
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type datasetMetadata struct {
	ReleaseTag       string `json:"release_tag"`
	AssetName        string `json:"asset_name"`
	AssetURL         string `json:"asset_url"`
	Systems          int    `json:"systems"`
	DirectedGates    int    `json:"directed_gates"`
	GeneratedAtEpoch int64  `json:"generated_at_epoch"`
}

func main() {
	repo := flag.String("repo", "Scetrov/evefrontier_datasets", "GitHub repo publishing dataset releases")
	outDir := flag.String("out", "data", "Output directory for the bundle and metadata")
	dbPath := flag.String("db", "", "Use a local SQLite file instead of downloading a release")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(*repo, *outDir, *dbPath); err != nil {
		slog.Error("build failed", "error", err)
		os.Exit(1)
	}
}

func run(repo, outDir, dbPath string) error {
	client := &http.Client{Timeout: 10 * time.Minute}

	tag := "local"
	assetName := filepath.Base(dbPath)
	assetURL := ""

	if dbPath == "" {
		rel, err := fetchLatestRelease(client, repo)
		if err != nil {
			return err
		}
		a, err := selectSQLiteAsset(rel)
		if err != nil {
			return err
		}
		slog.Info("downloading dataset asset", "asset", a.Name, "url", a.BrowserDownloadURL)

		tmp, err := downloadAsset(client, a.BrowserDownloadURL)
		if err != nil {
			return err
		}
		defer os.Remove(tmp)

		dbPath = tmp
		tag = rel.TagName
		assetName = a.Name
		assetURL = a.BrowserDownloadURL
	}

	ds, err := buildDatasetFromSQLite(dbPath, tag)
	if err != nil {
		return fmt.Errorf("build dataset from sqlite: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	bundlePath := filepath.Join(outDir, "starmap.bin")
	if err := persistence.WriteFile(ds, bundlePath); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}

	meta := datasetMetadata{
		ReleaseTag:       tag,
		AssetName:        assetName,
		AssetURL:         assetURL,
		Systems:          len(ds.Systems),
		DirectedGates:    len(ds.Gates),
		GeneratedAtEpoch: time.Now().Unix(),
	}
	metaRaw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	metaPath := filepath.Join(outDir, "starmap.meta.json")
	if err := os.WriteFile(metaPath, metaRaw, 0644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	slog.Info("wrote compact dataset",
		"bundle", bundlePath,
		"systems", meta.Systems,
		"gates", meta.DirectedGates,
	)
	return nil
}

func fetchLatestRelease(client *http.Client, repo string) (*release, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", repo)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api returned status %s", resp.Status)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("parse release payload: %w", err)
	}
	return &rel, nil
}

func selectSQLiteAsset(rel *release) (*asset, error) {
	for i := range rel.Assets {
		if filepath.Ext(rel.Assets[i].Name) == ".db" {
			return &rel.Assets[i], nil
		}
	}
	return nil, fmt.Errorf("release %s does not contain a SQLite asset", rel.TagName)
}

func downloadAsset(client *http.Client, url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dataset download returned status %s", resp.Status)
	}

	tmp, err := os.CreateTemp("", "starmap-*.db")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// buildDatasetFromSQLite reads the SolarSystems and Jumps tables. Jump rows
// referencing systems missing from SolarSystems are logged and skipped here
// at the acquisition boundary; engine.Open would reject them outright.
func buildDatasetFromSQLite(path, tag string) (starmap.Dataset, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return starmap.Dataset{}, fmt.Errorf("open sqlite database: %w", err)
	}
	defer db.Close()

	ds := starmap.Dataset{Tag: tag}
	known := make(map[uint32]bool)

	rows, err := db.Query(
		"SELECT solarSystemId, name, centerX, centerY, centerZ FROM SolarSystems ORDER BY solarSystemId")
	if err != nil {
		return starmap.Dataset{}, fmt.Errorf("query SolarSystems: %w", err)
	}
	for rows.Next() {
		var (
			id      int64
			name    string
			x, y, z float64
		)
		if err := rows.Scan(&id, &name, &x, &y, &z); err != nil {
			rows.Close()
			return starmap.Dataset{}, err
		}
		sys := starmap.System{ID: uint32(id), Name: name, Pos: r3.Vec{X: x, Y: y, Z: z}}
		ds.Systems = append(ds.Systems, sys)
		known[sys.ID] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return starmap.Dataset{}, err
	}
	rows.Close()

	rows, err = db.Query("SELECT fromSystemId, toSystemId FROM Jumps")
	if err != nil {
		return starmap.Dataset{}, fmt.Errorf("query Jumps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var from, to int64
		if err := rows.Scan(&from, &to); err != nil {
			return starmap.Dataset{}, err
		}
		gate := starmap.Gate{From: uint32(from), To: uint32(to)}
		if !known[gate.From] || !known[gate.To] {
			slog.Warn("jumps entry references missing system", "from", from, "to", to)
			continue
		}
		ds.Gates = append(ds.Gates, gate)
	}
	if err := rows.Err(); err != nil {
		return starmap.Dataset{}, err
	}
	return ds, nil
}
