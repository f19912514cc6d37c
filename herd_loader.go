package naadsm

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// HerdLoader is the narrow seam herd-population files are read through
// (spec §1 excludes concrete file formats from the core's scope).
type HerdLoader interface {
	Load(path string) ([]*Herd, error)
}

// CSVHerdLoader reads a herd population from a CSV file with header row
// id,officialId,productionType,productionName,x,y,size,status,prevalence,quarantined.
type CSVHerdLoader struct{}

func NewCSVHerdLoader() *CSVHerdLoader { return &CSVHerdLoader{} }

func (l *CSVHerdLoader) Load(path string) ([]*Herd, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening herd file %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing herd file %s", path)
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("herd file %s has no rows", path)
	}

	var herds []*Herd
	for i, row := range rows[1:] {
		h, err := parseHerdRow(row)
		if err != nil {
			return nil, errors.Wrapf(err, "herd file %s, row %d", path, i+2)
		}
		herds = append(herds, h)
	}
	return herds, nil
}

func parseHerdRow(row []string) (*Herd, error) {
	if len(row) < 10 {
		return nil, errors.Errorf("expected 10 columns, got %d", len(row))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return nil, errors.Wrap(err, "id")
	}
	productionType, err := strconv.Atoi(row[2])
	if err != nil {
		return nil, errors.Wrap(err, "productionType")
	}
	x, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return nil, errors.Wrap(err, "x")
	}
	y, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return nil, errors.Wrap(err, "y")
	}
	size, err := strconv.Atoi(row[6])
	if err != nil {
		return nil, errors.Wrap(err, "size")
	}
	status, err := parseDiseaseStatus(row[7])
	if err != nil {
		return nil, err
	}
	prevalence, err := strconv.ParseFloat(row[8], 64)
	if err != nil {
		return nil, errors.Wrap(err, "prevalence")
	}
	quarantined, err := strconv.ParseBool(row[9])
	if err != nil {
		return nil, errors.Wrap(err, "quarantined")
	}

	return &Herd{
		ID:             id,
		OfficialID:     row[1],
		ProductionType: productionType,
		ProductionName: row[3],
		X:              x,
		Y:              y,
		Size:           size,
		Status:         status,
		Prevalence:     prevalence,
		Quarantined:    quarantined,
	}, nil
}

func parseDiseaseStatus(s string) (DiseaseStatus, error) {
	switch s {
	case "Susceptible":
		return Susceptible, nil
	case "Latent":
		return Latent, nil
	case "InfectiousSubclinical":
		return InfectiousSubclinical, nil
	case "InfectiousClinical":
		return InfectiousClinical, nil
	case "NaturallyImmune":
		return NaturallyImmune, nil
	case "VaccineImmune":
		return VaccineImmune, nil
	case "Destroyed":
		return DestroyedStatus, nil
	default:
		return Susceptible, errors.Errorf(UnrecognizedKeywordError, s, "status")
	}
}
