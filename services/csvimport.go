package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/showcasehub/backend/errs"
	"github.com/showcasehub/backend/models"
)

// ParseProjectsCSV turns a header-mapped CSV stream into project rows. Only
// scalar project fields are imported; the technologies column is accepted in
// the header but deliberately not linked, and media is never imported. Any
// malformed row aborts the whole parse.
func ParseProjectsCSV(r io.Reader) ([]*models.Project, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, errs.BadRequest("CSV file is empty or has no header row")
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := columns["title"]; !ok {
		return nil, errs.BadRequest("CSV header must contain a title column")
	}

	var projects []*models.Project
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.BadRequest(fmt.Sprintf("failed to parse CSV at line %d", line))
		}

		project, err := projectFromRecord(columns, record, line)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, nil
}

func projectFromRecord(columns map[string]int, record []string, line int) (*models.Project, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	optional := func(name string) *string {
		if v := field(name); v != "" {
			return &v
		}
		return nil
	}

	project := &models.Project{
		Title:        field("title"),
		MainTopic:    optional("main_topic"),
		Description:  field("description"),
		StudyTrack:   optional("study_track"),
		GithubLink:   optional("github_link"),
		LiveLink:     optional("live_link"),
		YoutubeLink:  optional("youtube_link"),
		DocumentLink: optional("document_link"),
	}
	if project.Title == "" {
		return nil, errs.BadRequest(fmt.Sprintf("missing title at line %d", line))
	}

	if yearStr := field("submission_year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, errs.BadRequest(fmt.Sprintf("invalid submission_year at line %d", line))
		}
		project.SubmissionYear = &year
	}

	if facultyStr := field("faculty_id"); facultyStr != "" {
		facultyID, err := uuid.Parse(facultyStr)
		if err != nil {
			return nil, errs.BadRequest(fmt.Sprintf("invalid faculty_id at line %d", line))
		}
		project.FacultyID = &facultyID
	}

	return project, nil
}
