package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"koperasi-adminhub/internal/core/domain"
)

func TestMapHeader(t *testing.T) {
	t.Run("full header", func(t *testing.T) {
		index, err := mapHeader(memberCSVHeader)
		if err != nil {
			t.Fatalf("mapHeader() error = %v", err)
		}
		if index["code"] != 0 || index["name"] != 1 || index["member_type"] != 2 {
			t.Errorf("unexpected column positions: %v", index)
		}
	})

	t.Run("case and spacing normalized", func(t *testing.T) {
		index, err := mapHeader([]string{" Code ", "NAME", "Member_Type"})
		if err != nil {
			t.Fatalf("mapHeader() error = %v", err)
		}
		if index["code"] != 0 || index["member_type"] != 2 {
			t.Errorf("unexpected column positions: %v", index)
		}
	})

	t.Run("missing required column", func(t *testing.T) {
		if _, err := mapHeader([]string{"code", "name"}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestParseCSVDate(t *testing.T) {
	got, err := parseCSVDate("15/01/2024")
	if err != nil {
		t.Fatalf("parseCSVDate() error = %v", err)
	}
	if got != time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("parseCSVDate(dd/mm/yyyy) = %v", got)
	}

	got, err = parseCSVDate("2024-01-15")
	if err != nil {
		t.Fatalf("parseCSVDate() error = %v", err)
	}
	if got != time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("parseCSVDate(yyyy-mm-dd) = %v", got)
	}

	if _, err := parseCSVDate("15-01-2024"); err == nil {
		t.Error("parseCSVDate accepted an unsupported format")
	}
}

func TestParseMemberRow(t *testing.T) {
	index, err := mapHeader(memberCSVHeader)
	if err != nil {
		t.Fatalf("mapHeader() error = %v", err)
	}

	t.Run("individu row", func(t *testing.T) {
		record := []string{
			"AG-001", "Budi Santoso", "individu", "Jl. Melati 1", "0811111111", "budi@mail.id", "15/01/2024",
			"3174012345678901", "Jakarta", "01/05/1990", "Karyawan",
			"", "", "", "",
		}
		input, err := parseMemberRow(record, index)
		if err != nil {
			t.Fatalf("parseMemberRow() error = %v", err)
		}
		if input.Code != "AG-001" || input.MemberType != "individu" {
			t.Errorf("unexpected input: %+v", input)
		}
		if input.Individu == nil || input.Individu.NIK != "3174012345678901" {
			t.Errorf("individu profile not parsed: %+v", input.Individu)
		}
		if input.Individu.BirthDate == nil || input.Individu.BirthDate.Year() != 1990 {
			t.Errorf("birth date not parsed: %v", input.Individu.BirthDate)
		}
		if input.Perusahaan != nil {
			t.Error("perusahaan profile should be nil for individu")
		}
	})

	t.Run("perusahaan row", func(t *testing.T) {
		record := []string{
			"AG-002", "PT Maju Jaya", "perusahaan", "", "", "", "",
			"", "", "", "",
			"REG-9001", "01.234.567.8-901.000", "Sari", "0822222222",
		}
		input, err := parseMemberRow(record, index)
		if err != nil {
			t.Fatalf("parseMemberRow() error = %v", err)
		}
		if input.Perusahaan == nil || input.Perusahaan.RegistrationNo != "REG-9001" {
			t.Errorf("perusahaan profile not parsed: %+v", input.Perusahaan)
		}
	})

	t.Run("missing code", func(t *testing.T) {
		record := make([]string, len(memberCSVHeader))
		record[1] = "Tanpa Kode"
		record[2] = "individu"
		if _, err := parseMemberRow(record, index); err == nil {
			t.Error("parseMemberRow accepted a row without a code")
		}
	})

	t.Run("unknown member type", func(t *testing.T) {
		record := make([]string, len(memberCSVHeader))
		record[0] = "AG-003"
		record[1] = "Salah Tipe"
		record[2] = "koperasi"
		if _, err := parseMemberRow(record, index); !errors.Is(err, domain.ErrInvalidMemberType) {
			t.Errorf("error = %v, want ErrInvalidMemberType", err)
		}
	})

	t.Run("bad join date", func(t *testing.T) {
		record := make([]string, len(memberCSVHeader))
		record[0] = "AG-004"
		record[1] = "Tanggal Rusak"
		record[2] = "individu"
		record[6] = "31/31/2024"
		if _, err := parseMemberRow(record, index); err == nil {
			t.Error("parseMemberRow accepted a bad join date")
		}
	})
}

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	svc := &ImportService{}
	if err := svc.WriteTemplate(&buf); err != nil {
		t.Fatalf("WriteTemplate() error = %v", err)
	}

	line := strings.TrimSpace(buf.String())
	if line != strings.Join(memberCSVHeader, ",") {
		t.Errorf("template header = %q", line)
	}
}

func TestStringKeyed(t *testing.T) {
	out := stringKeyed(map[int]string{3: "a", 1: "b"})
	if out["1"] != "b" || out["3"] != "a" {
		t.Errorf("stringKeyed = %v", out)
	}
}
