// Package export renders member lists as downloadable spreadsheets.
package export

import (
	"fmt"
	"time"

	"family-tree-go/internal/domain/member"
	"github.com/xuri/excelize/v2"
)

const membersSheet = "Members"

var memberHeaders = []string{
	"First Name", "Middle Name", "Last Name", "Gender", "Generation",
	"Date of Birth", "Date of Death", "Place of Birth", "Place of Death",
	"Alive", "Summary",
}

// MembersXLSX writes the members to a single-sheet workbook and returns the
// serialized file bytes.
func MembersXLSX(members []member.Member) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(membersSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for col, header := range memberHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(membersSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(memberHeaders), 1)
		_ = f.SetCellStyle(membersSheet, "A1", last, headerStyle)
	}

	for i, m := range members {
		row := []interface{}{
			m.FirstName, m.MiddleName, m.LastName, m.Gender, m.Generation,
			formatDate(m.DateOfBirth), formatDate(m.DateOfDeath),
			m.PlaceOfBirth, m.PlaceOfDeath, m.IsAlive, m.ShortSummary,
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(membersSheet, cell, value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
