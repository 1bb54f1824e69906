package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/config"
)

func newDistanceCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Great-circle distance in meters between two points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := parsePoint(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			b, err := parsePoint(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			d, err := proximity.DistanceBetween(a, b)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f\n", d)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "origin as lat,lng")
	cmd.Flags().StringVar(&to, "to", "", "destination as lat,lng")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newZoomCmd() *cobra.Command {
	var (
		radius float64
		table  string
	)

	cmd := &cobra.Command{
		Use:   "zoom",
		Short: "Map zoom level for a search radius",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			zt := proximity.DefaultZoomTable()
			if table != "" {
				var err error
				if zt, err = proximity.ParseZoomTable(table); err != nil {
					return fmt.Errorf("--table: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), zt.LevelFor(radius))
			return nil
		},
	}

	cmd.Flags().Float64Var(&radius, "radius", 0, "search radius in meters")
	cmd.Flags().StringVar(&table, "table", "", `zoom table, e.g. "1000:5,3000:6,*:12"`)
	_ = cmd.MarkFlagRequired("radius")
	return cmd
}

type filterOutput struct {
	Kept        int           `json:"kept"`
	Candidates  int           `json:"candidates"`
	Unlocatable int           `json:"unlocatable"`
	Records     []filteredRow `json:"records"`
}

type filteredRow struct {
	DistanceMeters float64         `json:"distance_meters"`
	Record         json.RawMessage `json:"record"`
}

func newFilterCmd() *cobra.Command {
	var (
		origin string
		radius float64
		file   string
		sorted bool
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep the records of a JSON array that lie within a radius",
		Long: `Reads a JSON array of objects carrying "latitude" and "longitude"
(numbers, numeric strings or null) and prints the ones within --radius meters
of --origin. Records without usable coordinates are dropped and counted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			center, err := parsePoint(origin)
			if err != nil {
				return fmt.Errorf("--origin: %w", err)
			}
			sc, err := proximity.NewSearchContext(center, radius)
			if err != nil {
				return err
			}

			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			records, err := decodeRecords(data)
			if err != nil {
				return err
			}

			matches, stats, err := proximity.WithinRadius(records, sc)
			if err != nil {
				return err
			}
			if sorted {
				proximity.SortByDistance(matches, nil)
			}

			out := filterOutput{
				Kept:        stats.Matched,
				Candidates:  stats.Candidates,
				Unlocatable: stats.Unlocatable,
				Records:     make([]filteredRow, 0, len(matches)),
			}
			for _, m := range matches {
				out.Records = append(out.Records, filteredRow{DistanceMeters: m.DistanceMeters, Record: m.Record.raw})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "", "search origin as lat,lng")
	cmd.Flags().Float64Var(&radius, "radius", 0, "search radius in meters")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON records file, - for stdin")
	cmd.Flags().BoolVar(&sorted, "sort", false, "order by distance instead of input order")
	_ = cmd.MarkFlagRequired("origin")
	_ = cmd.MarkFlagRequired("radius")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token signed with JWT_SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var jwtCfg config.JWTConfig
			if err := envconfig.Process("", &jwtCfg); err != nil {
				return fmt.Errorf("loading jwt config: %w", err)
			}

			userID := uuid.New()
			if subject != "" {
				var err error
				if userID, err = uuid.Parse(subject); err != nil {
					return fmt.Errorf("--subject: %w", err)
				}
			}

			token, expiresAt, err := auth.NewJWTService(jwtCfg.SecretKey, jwtCfg.Issuer).GenerateAccessToken(userID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "subject: %s\nexpires: %s\n%s\n", userID, expiresAt.Format(time.RFC3339), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "user id, random when empty")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

func parsePoint(s string) (valueobject.GeoPoint, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return valueobject.GeoPoint{}, fmt.Errorf("expected lat,lng, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return valueobject.GeoPoint{}, fmt.Errorf("latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return valueobject.GeoPoint{}, fmt.Errorf("longitude: %w", err)
	}
	p := valueobject.NewGeoPoint(lat, lng)
	if !p.IsValid() {
		return valueobject.GeoPoint{}, fmt.Errorf("%s is out of range", p)
	}
	return p, nil
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return data, nil
}
