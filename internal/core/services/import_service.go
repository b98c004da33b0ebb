package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/pkg/format"
	"koperasi-adminhub/internal/pkg/pagination"
)

// memberCSVHeader is the member import/export column layout
var memberCSVHeader = []string{
	"code", "name", "member_type", "address", "phone", "email", "join_date",
	"nik", "birth_place", "birth_date", "occupation",
	"registration_no", "npwp", "contact_person", "contact_phone",
}

// ImportResult summarizes one bulk import
type ImportResult struct {
	RunID     uint           `json:"run_id"`
	Message   string         `json:"message"`
	Processed int            `json:"processed"`
	Failed    int            `json:"failed"`
	Errors    map[int]string `json:"errors,omitempty"`
}

// bilyetCSVHeader is the time deposit bilyet export column layout
var bilyetCSVHeader = []string{
	"bilyet_no", "member_code", "member_name", "nominal", "term_months",
	"rate", "open_date", "maturity_date", "rollover", "status",
}

// ImportService handles CSV bulk import and export
type ImportService struct {
	memberSvc  *MemberService
	memberRepo *repositories.MemberRepository
	bilyetRepo *repositories.BilyetRepository
	runRepo    *repositories.ImportRunRepository
}

// NewImportService creates a new import service
func NewImportService(
	memberSvc *MemberService,
	memberRepo *repositories.MemberRepository,
	bilyetRepo *repositories.BilyetRepository,
	runRepo *repositories.ImportRunRepository,
) *ImportService {
	return &ImportService{
		memberSvc:  memberSvc,
		memberRepo: memberRepo,
		bilyetRepo: bilyetRepo,
		runRepo:    runRepo,
	}
}

// ImportMembers reads a CSV stream and registers one member per row.
// A bad row never aborts the file; its reason is reported per row
// number (1-based, excluding the header).
func (s *ImportService) ImportMembers(ctx context.Context, actorID uint, fileName string, src io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	colIndex, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make(map[int]string)}
	row := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.Failed++
			result.Errors[row] = "baris tidak dapat dibaca"
			continue
		}

		input, err := parseMemberRow(record, colIndex)
		if err != nil {
			result.Failed++
			result.Errors[row] = err.Error()
			continue
		}

		if _, err := s.memberSvc.CreateMember(ctx, actorID, input); err != nil {
			result.Failed++
			result.Errors[row] = err.Error()
			continue
		}
		result.Processed++
	}

	rowErrors, _ := json.Marshal(stringKeyed(result.Errors))
	run := &models.ImportRun{
		RunNo:      fmt.Sprintf("IMP-%s", time.Now().Format("20060102150405")),
		Resource:   "members",
		FileName:   fileName,
		Processed:  result.Processed,
		Failed:     result.Failed,
		RowErrors:  string(rowErrors),
		UploadedBy: actorID,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	result.RunID = run.ID
	result.Message = fmt.Sprintf("Import selesai: %d berhasil, %d gagal", result.Processed, result.Failed)
	if len(result.Errors) == 0 {
		result.Errors = nil
	}

	log.Printf("✅ Member import %s: %d ok, %d failed", run.RunNo, result.Processed, result.Failed)
	return result, nil
}

// ListRuns lists import runs with pagination
func (s *ImportService) ListRuns(ctx context.Context, resource string, params *pagination.Params) (*pagination.Window, error) {
	runs, total, err := s.runRepo.List(ctx, resource, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(runs, params, total), nil
}

// WriteTemplate writes the member import template (header only)
func (s *ImportService) WriteTemplate(dst io.Writer) error {
	writer := csv.NewWriter(dst)
	if err := writer.Write(memberCSVHeader); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// ExportMembers writes all members matching a filter as CSV
func (s *ImportService) ExportMembers(ctx context.Context, filter *repositories.MemberFilter, dst io.Writer) error {
	members, err := s.memberRepo.ListAll(ctx, filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(dst)
	if err := writer.Write(memberCSVHeader); err != nil {
		return err
	}

	for _, member := range members {
		record := []string{
			member.Code,
			member.Name,
			member.MemberType,
			member.Address,
			member.Phone,
			member.Email,
			format.Date(member.JoinDate),
			"", "", "", "", "", "", "", "",
		}
		if member.Individu != nil {
			record[7] = member.Individu.NIK
			record[8] = member.Individu.BirthPlace
			record[9] = format.DatePtr(member.Individu.BirthDate)
			record[10] = member.Individu.Occupation
		}
		if member.Perusahaan != nil {
			record[11] = member.Perusahaan.RegistrationNo
			record[12] = member.Perusahaan.NPWP
			record[13] = member.Perusahaan.ContactPerson
			record[14] = member.Perusahaan.ContactPhone
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportBilyets writes all time deposit bilyets matching a filter as CSV
func (s *ImportService) ExportBilyets(ctx context.Context, filter *repositories.BilyetFilter, dst io.Writer) error {
	bilyets, err := s.bilyetRepo.ListAll(ctx, filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(dst)
	if err := writer.Write(bilyetCSVHeader); err != nil {
		return err
	}

	for _, bilyet := range bilyets {
		memberCode := ""
		memberName := ""
		if bilyet.Member != nil {
			memberCode = bilyet.Member.Code
			memberName = bilyet.Member.Name
		}
		record := []string{
			bilyet.BilyetNo,
			memberCode,
			memberName,
			strconv.FormatInt(bilyet.Nominal, 10),
			strconv.Itoa(bilyet.TermMonths),
			strconv.FormatFloat(bilyet.Rate, 'f', 2, 64),
			format.Date(bilyet.OpenDate),
			format.Date(bilyet.MaturityDate),
			strconv.FormatBool(bilyet.Rollover),
			bilyet.Status,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ============================================================
// Row parsing
// ============================================================

func mapHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"code", "name", "member_type"} {
		if _, ok := index[required]; !ok {
			return nil, domain.ErrInvalidInput
		}
	}
	return index, nil
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseMemberRow(record []string, index map[string]int) (*MemberInput, error) {
	input := &MemberInput{
		Code:       field(record, index, "code"),
		Name:       field(record, index, "name"),
		MemberType: strings.ToLower(field(record, index, "member_type")),
		Address:    field(record, index, "address"),
		Phone:      field(record, index, "phone"),
		Email:      field(record, index, "email"),
	}
	if input.Code == "" || input.Name == "" {
		return nil, fmt.Errorf("kode dan nama wajib diisi")
	}

	if raw := field(record, index, "join_date"); raw != "" {
		joinDate, err := parseCSVDate(raw)
		if err != nil {
			return nil, fmt.Errorf("tanggal bergabung tidak valid: %s", raw)
		}
		input.JoinDate = joinDate
	}

	switch input.MemberType {
	case models.MemberTypeIndividu:
		profile := &models.IndividuProfile{
			NIK:        field(record, index, "nik"),
			BirthPlace: field(record, index, "birth_place"),
			Occupation: field(record, index, "occupation"),
		}
		if raw := field(record, index, "birth_date"); raw != "" {
			birthDate, err := parseCSVDate(raw)
			if err != nil {
				return nil, fmt.Errorf("tanggal lahir tidak valid: %s", raw)
			}
			profile.BirthDate = &birthDate
		}
		input.Individu = profile
	case models.MemberTypePerusahaan:
		input.Perusahaan = &models.PerusahaanProfile{
			RegistrationNo: field(record, index, "registration_no"),
			NPWP:           field(record, index, "npwp"),
			ContactPerson:  field(record, index, "contact_person"),
			ContactPhone:   field(record, index, "contact_phone"),
		}
	default:
		return nil, domain.ErrInvalidMemberType
	}

	return input, nil
}

// parseCSVDate accepts dd/mm/yyyy and yyyy-mm-dd
func parseCSVDate(raw string) (time.Time, error) {
	if t, err := time.Parse("02/01/2006", raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func stringKeyed(errs map[int]string) map[string]string {
	out := make(map[string]string, len(errs))
	rows := make([]int, 0, len(errs))
	for row := range errs {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	for _, row := range rows {
		out[strconv.Itoa(row)] = errs[row]
	}
	return out
}
