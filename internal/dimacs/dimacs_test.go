package dimacs

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hartwell/cdclsat/internal/sat"
)

type instance struct {
	Variables int
	Clauses   [][]sat.Literal
}

func (i *instance) AddVariable() int {
	i.Variables++
	return i.Variables - 1
}

func (i *instance) AddClause(tmpClause []sat.Literal) error {
	clause := make([]sat.Literal, len(tmpClause))
	copy(clause, tmpClause)
	i.Clauses = append(i.Clauses, clause)
	return nil
}

var want = instance{
	Variables: 3,
	Clauses: [][]sat.Literal{
		{sat.PositiveLiteral(0), sat.PositiveLiteral(1)},
		{sat.NegativeLiteral(0), sat.PositiveLiteral(2)},
		{sat.NegativeLiteral(1), sat.NegativeLiteral(2)},
	},
}

func TestLoadDIMACS_cnf(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf", false, &got); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadDIMACS(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACS_gzip(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf.gz", true, &got); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadDIMACS(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACS_noFile(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/does-not-exist.cnf", false, &got); err == nil {
		t.Error("LoadDIMACS(): want error, got none")
	}
}

func TestLoadDIMACS_gzipOnPlainFile(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf", true, &got); err == nil {
		t.Error("LoadDIMACS(): want error, got none")
	}
}
