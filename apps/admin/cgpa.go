package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/JithuMorrison/OneStop-Web-sub001/core/grade"
)

var stdin io.Reader = os.Stdin // mockable

func (cli *commandLine) cgpa(args []string) error {
	cgpaCmd := cli.newFlagSet("cgpa")
	file := cgpaCmd.String("file", "", "JSON file of course rows: [{\"id\", \"credits\", \"grade\"}, ...]. Use - for stdin.")
	lenient := cgpaCmd.Bool("lenient", false, "Count unknown grades as ungraded instead of failing.")
	if err := parse(cgpaCmd, args); err != nil {
		return err
	}
	if *file == "" {
		cgpaCmd.Usage()
		return errHelp
	}

	scale, err := grade.ParseScale(cli.conf.Grades.Scale)
	if err != nil {
		return err
	}
	rows, err := readCourses(*file)
	if err != nil {
		return err
	}
	if !*lenient {
		if err = scale.CheckGrades(rows); err != nil {
			return err
		}
	}

	summary := scale.Summarize(rows)
	if !isTerminalFunc() {
		return cli.printJSON(summary)
	}
	_, err = fmt.Fprintf(cli.out, "Courses:       %d\nGraded:        %d (%d%%)\nTotal credits: %g\nGPA:           %.2f\n",
		summary.Courses, summary.Graded, summary.Completion, summary.TotalCredits, summary.GPA)
	return err
}

// readCourses accepts a JSON array of rows or an object with a "courses" array.
func readCourses(path string) ([]grade.Course, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading courses")
	}

	var rows []grade.Course
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Courses []grade.Course `json:"courses"`
		}
		err = json.Unmarshal(data, &wrapped)
		rows = wrapped.Courses
	} else {
		err = json.Unmarshal(data, &rows)
	}
	if err != nil {
		return nil, errors.Wrap(err, "decoding courses")
	}
	return rows, nil
}
