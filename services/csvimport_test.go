package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjectsCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"title,main_topic,description,submission_year,study_track,github_link,technologies",
		"Solar Tracker,Energy,Tracks the sun,2023,Electrical,https://github.com/x/solar,\"React, Go\"",
		"Chat App,,Realtime chat,,,,",
	}, "\n")

	projects, err := ParseProjectsCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, projects, 2)

	first := projects[0]
	assert.Equal(t, "Solar Tracker", first.Title)
	require.NotNil(t, first.MainTopic)
	assert.Equal(t, "Energy", *first.MainTopic)
	require.NotNil(t, first.SubmissionYear)
	assert.Equal(t, 2023, *first.SubmissionYear)
	require.NotNil(t, first.GithubLink)
	assert.Equal(t, "https://github.com/x/solar", *first.GithubLink)

	second := projects[1]
	assert.Equal(t, "Chat App", second.Title)
	assert.Nil(t, second.MainTopic)
	assert.Nil(t, second.SubmissionYear)
	// the technologies column is accepted but never linked
	assert.Empty(t, second.GithubLink)
}

func TestParseProjectsCSVInvalidYear(t *testing.T) {
	csvData := "title,submission_year\nBad Year,twentytwo\n"

	_, err := ParseProjectsCSV(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submission_year")
}

func TestParseProjectsCSVMissingTitleColumn(t *testing.T) {
	csvData := "description\nno title here\n"

	_, err := ParseProjectsCSV(strings.NewReader(csvData))
	require.Error(t, err)
}

func TestParseProjectsCSVMissingTitleValue(t *testing.T) {
	csvData := "title,description\n,missing title\n"

	_, err := ParseProjectsCSV(strings.NewReader(csvData))
	require.Error(t, err)
}

func TestParseProjectsCSVEmptyFile(t *testing.T) {
	_, err := ParseProjectsCSV(strings.NewReader(""))
	require.Error(t, err)
}
