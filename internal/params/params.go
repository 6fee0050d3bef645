// Package params loads and validates parameter sets.
//
// A parameter set is one KEY=VALUE file describing a single availability search:
// the date range, the park or tour identifiers to search, and who to notify.
// Files use shell-compatible syntax so the same files can still be sourced by a
// shell, but they are never executed; they are parsed with koanf's dotenv parser
// and decoded into a typed, validated Set.
package params

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DateLayout is the date format used by START_DATE and END_DATE and passed to checkers.
const DateLayout = "2006-01-02"

// Kind identifies which checker a parameter set is meant for.
type Kind string

const (
	// KindCampsite searches campgrounds (PARKS, NIGHTS).
	KindCampsite Kind = "campsite"
	// KindTour searches guided tours (TOURS, FACILITY).
	KindTour Kind = "tour"
)

// fileValues mirrors the raw keys of a parameter file before conversion.
type fileValues struct {
	StartDate string `koanf:"START_DATE" validate:"required,datetime=2006-01-02"`
	EndDate   string `koanf:"END_DATE" validate:"required,datetime=2006-01-02"`
	Parks     string `koanf:"PARKS"`
	Nights    string `koanf:"NIGHTS" validate:"omitempty,number"`
	Tours     string `koanf:"TOURS"`
	Facility  string `koanf:"FACILITY" validate:"omitempty,number"`
	Email     string `koanf:"EMAIL" validate:"omitempty,email"`
	Emails    string `koanf:"EMAILS"`
	Phones    string `koanf:"PHONES"`
	Subject   string `koanf:"SUBJECT"`
}

// keyFields maps validator struct field names back to file keys for error messages.
var keyFields = map[string]string{
	"StartDate": "START_DATE",
	"EndDate":   "END_DATE",
	"Nights":    "NIGHTS",
	"Facility":  "FACILITY",
	"Email":     "EMAIL",
}

// Set is a validated parameter set.
type Set struct {
	// Name is the file name the set was loaded from (without directory).
	Name string
	// Path is the full path of the parameter file.
	Path string
	// Kind selects the campsite or tour checker.
	Kind Kind

	StartDate time.Time
	EndDate   time.Time

	// Parks and Nights are set for campsite searches.
	Parks  []string
	Nights int

	// Tours and Facility are set for tour searches.
	Tours    []string
	Facility string

	// Emails holds EMAIL followed by EMAILS, de-duplicated in file order.
	Emails []string
	// Phones holds SMS recipients in E.164 form.
	Phones []string

	// Subject overrides the notification subject when non-empty.
	Subject string
}

// Load reads and validates the parameter file at path.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}
	return Parse(path, data)
}

// Parse validates parameter file content held in memory. name is used in errors.
func Parse(name string, data []byte) (*Set, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(foldArrays(data)), dotenv.Parser()); err != nil {
		return nil, &ValidationError{FilePath: name, Message: fmt.Sprintf("parsing: %v", err)}
	}
	return decode(k, name)
}

var arrayStart = regexp.MustCompile(`^\s*(export\s+)?[A-Za-z_][A-Za-z0-9_]*=\(`)

// foldArrays joins bash arrays written over several lines, such as
//
//	EMAILS=(
//	  "a@x.com"
//	  "b@y.com"
//	)
//
// into one line so the dotenv parser accepts them.
func foldArrays(data []byte) []byte {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var out []string
	var open []string
	for _, line := range lines {
		if open == nil {
			if arrayStart.MatchString(line) && !strings.Contains(line[strings.Index(line, "(")+1:], ")") {
				open = []string{strings.TrimSpace(stripComment(line))}
				continue
			}
			out = append(out, line)
			continue
		}

		item := strings.TrimSpace(stripComment(line))
		if item != "" {
			open = append(open, item)
		}
		if strings.HasSuffix(item, ")") {
			out = append(out, joinArray(open))
			open = nil
		}
	}
	if open != nil {
		out = append(out, joinArray(append(open, ")")))
	}
	return []byte(strings.Join(out, "\n"))
}

func joinArray(parts []string) string {
	head := parts[0]
	return head + strings.Join(parts[1:], " ")
}

// stripComment removes a trailing " # ..." comment that is outside quotes.
func stripComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '#' && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t'):
			return line[:i]
		}
	}
	return line
}

func decode(k *koanf.Koanf, path string) (*Set, error) {
	var raw fileValues
	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, &ValidationError{FilePath: path, Message: fmt.Sprintf("decoding: %v", err)}
	}
	raw.trim()

	if err := validate.Struct(raw); err != nil {
		return nil, fieldError(path, err)
	}

	return raw.toSet(path)
}

var validate = validator.New()

// fieldError converts the first validator failure into a ValidationError.
func fieldError(path string, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}

	fe := verrs[0]
	key := keyFields[fe.Field()]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "datetime":
		msg = fmt.Sprintf("must be a date in YYYY-MM-DD format, got %q", fe.Value())
	case "number":
		msg = fmt.Sprintf("must be a number, got %q", fe.Value())
	case "email":
		msg = fmt.Sprintf("invalid email address %q", fe.Value())
	default:
		msg = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return &ValidationError{FilePath: path, Field: key, Message: msg}
}

func (v *fileValues) trim() {
	for _, s := range []*string{
		&v.StartDate, &v.EndDate, &v.Parks, &v.Nights, &v.Tours,
		&v.Facility, &v.Email, &v.Emails, &v.Phones, &v.Subject,
	} {
		*s = strings.TrimSpace(*s)
	}
}

// toSet performs the cross-field checks and converts raw values into a Set.
func (v *fileValues) toSet(path string) (*Set, error) {
	set := &Set{
		Name:    filepath.Base(path),
		Path:    path,
		Subject: v.Subject,
	}

	// Formats were checked by the validator.
	set.StartDate, _ = time.Parse(DateLayout, v.StartDate)
	set.EndDate, _ = time.Parse(DateLayout, v.EndDate)
	if set.EndDate.Before(set.StartDate) {
		return nil, &ValidationError{FilePath: path, Field: "END_DATE", Message: "must not be before START_DATE"}
	}

	parks := SplitList(v.Parks)
	tours := SplitList(v.Tours)
	switch {
	case len(parks) > 0 && len(tours) > 0:
		return nil, &ValidationError{FilePath: path, Message: "PARKS and TOURS cannot both be set"}
	case len(parks) > 0:
		set.Kind = KindCampsite
	case len(tours) > 0:
		set.Kind = KindTour
	default:
		return nil, &ValidationError{FilePath: path, Message: "one of PARKS or TOURS is required"}
	}

	if err := checkIDs(path, "PARKS", parks); err != nil {
		return nil, err
	}
	if err := checkIDs(path, "TOURS", tours); err != nil {
		return nil, err
	}
	set.Parks = parks
	set.Tours = tours

	if v.Nights != "" {
		if set.Kind != KindCampsite {
			return nil, &ValidationError{FilePath: path, Field: "NIGHTS", Message: "only applies to PARKS searches"}
		}
		n, err := strconv.Atoi(v.Nights)
		if err != nil || n < 1 {
			return nil, &ValidationError{FilePath: path, Field: "NIGHTS", Message: fmt.Sprintf("must be a positive integer, got %q", v.Nights)}
		}
		set.Nights = n
	}

	if set.Kind == KindTour {
		if v.Facility == "" {
			return nil, &ValidationError{FilePath: path, Field: "FACILITY", Message: "is required with TOURS"}
		}
		set.Facility = v.Facility
	} else if v.Facility != "" {
		return nil, &ValidationError{FilePath: path, Field: "FACILITY", Message: "only applies to TOURS searches"}
	}

	emails, err := recipients(path, v.Email, v.Emails)
	if err != nil {
		return nil, err
	}
	set.Emails = emails

	for _, p := range SplitList(v.Phones) {
		if err := validate.Var(p, "e164"); err != nil {
			return nil, &ValidationError{FilePath: path, Field: "PHONES", Message: fmt.Sprintf("invalid phone number %q (use E.164, e.g. +14155550100)", p)}
		}
		set.Phones = append(set.Phones, p)
	}

	if len(set.Emails) == 0 && len(set.Phones) == 0 {
		return nil, &ValidationError{FilePath: path, Message: "at least one recipient (EMAIL, EMAILS or PHONES) is required"}
	}

	return set, nil
}

func checkIDs(path, key string, ids []string) error {
	for _, id := range ids {
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			return &ValidationError{FilePath: path, Field: key, Message: fmt.Sprintf("invalid id %q", id)}
		}
	}
	return nil
}

// recipients merges EMAIL and EMAILS, keeping the first occurrence of each address.
func recipients(path, single, list string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)

	all := SplitList(list)
	if single != "" {
		all = append([]string{single}, all...)
	}
	for _, addr := range all {
		if err := validate.Var(addr, "email"); err != nil {
			return nil, &ValidationError{FilePath: path, Field: "EMAILS", Message: fmt.Sprintf("invalid email address %q", addr)}
		}
		key := strings.ToLower(addr)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, addr)
	}
	return out, nil
}

// SplitList splits a list value on commas and whitespace. Bash array syntax such as
// ("a" "b") is accepted so files written for the old shell scripts keep working.
func SplitList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	var out []string
	for _, f := range fields {
		f = strings.Trim(f, `"'`)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Recipients returns the number of email and SMS recipients.
func (s *Set) Recipients() int {
	return len(s.Emails) + len(s.Phones)
}

// Args returns the checker arguments for this set, without the command itself.
func (s *Set) Args() []string {
	args := []string{
		"--start-date", s.StartDate.Format(DateLayout),
		"--end-date", s.EndDate.Format(DateLayout),
	}

	switch s.Kind {
	case KindCampsite:
		args = append(args, "--parks")
		args = append(args, s.Parks...)
		if s.Nights > 0 {
			args = append(args, "--nights", strconv.Itoa(s.Nights))
		}
	case KindTour:
		args = append(args, "--tours")
		args = append(args, s.Tours...)
		args = append(args, "--facility", s.Facility)
	}
	return args
}
