package convert

import (
	"fmt"
	"sort"
)

// Python one-liners for the CSV and dBASE conversions. Input and output
// paths arrive as argv[1] and argv[2]. Rows are wrapped in a {"rows": ...}
// object rather than emitted as a bare array: TOML has no top-level array,
// and the wrapper lets CSV-derived data survive a TOML stage in a
// conversion chain.
const (
	pyCSVToJSON = `import csv, json, sys
with open(sys.argv[1], newline="") as f:
    rows = list(csv.DictReader(f))
with open(sys.argv[2], "w") as f:
    json.dump({"rows": rows}, f, ensure_ascii=False, indent=2)
`

	pyJSONToCSV = `import csv, json, sys
with open(sys.argv[1]) as f:
    data = json.load(f)
rows = data["rows"] if isinstance(data, dict) else data
with open(sys.argv[2], "w", newline="") as f:
    if rows:
        w = csv.DictWriter(f, fieldnames=list(rows[0].keys()))
        w.writeheader()
        w.writerows(rows)
`

	pyDBFToCSV = `import csv, sys
from dbfread import DBF
table = DBF(sys.argv[1])
with open(sys.argv[2], "w", newline="") as f:
    w = csv.writer(f)
    w.writerow(table.field_names)
    for rec in table:
        w.writerow(list(rec.values()))
`
)

// ffmpegConversion builds an audio transcode operation. The output
// container is forced with -f so the result does not depend on the
// output file's extension.
func ffmpegConversion(from, to, muxer string) *Conversion {
	return &Conversion{
		Name: from + "-to-" + to,
		From: from,
		To:   to,
		Tool: "ffmpeg",
		args: func(in, out string) []string {
			return []string{"-y", "-loglevel", "error", "-i", in, "-f", muxer, out}
		},
	}
}

// yqConversion builds a serialization-format operation delegating to yq,
// which reads the input path and writes the result to stdout.
func yqConversion(from, to string) *Conversion {
	return &Conversion{
		Name:        from + "-to-" + to,
		From:        from,
		To:          to,
		Tool:        "yq",
		stdoutToOut: true,
		args: func(in, _ string) []string {
			return []string{"--input-format", from, "--output-format", to, in}
		},
	}
}

// pythonConversion builds an operation delegating to a python3 script
// that receives the input and output paths as arguments.
func pythonConversion(from, to, script string) *Conversion {
	return &Conversion{
		Name: from + "-to-" + to,
		From: from,
		To:   to,
		Tool: "python3",
		args: func(in, out string) []string {
			return []string{"-c", script, in, out}
		},
	}
}

// Catalogue returns the full set of conversions, keyed by name.
func Catalogue() map[string]*Conversion {
	conversions := []*Conversion{
		// Audio containers via ffmpeg
		ffmpegConversion("wav", "mp3", "mp3"),
		ffmpegConversion("mp3", "wav", "wav"),
		ffmpegConversion("wav", "flac", "flac"),
		ffmpegConversion("flac", "wav", "wav"),
		ffmpegConversion("wav", "ogg", "ogg"),
		ffmpegConversion("ogg", "wav", "wav"),

		// Serialization formats via yq
		yqConversion("json", "yaml"),
		yqConversion("yaml", "json"),
		yqConversion("json", "toml"),
		yqConversion("toml", "json"),
		yqConversion("yaml", "toml"),
		yqConversion("toml", "yaml"),

		// Tabular data via python3
		pythonConversion("csv", "json", pyCSVToJSON),
		pythonConversion("json", "csv", pyJSONToCSV),
		pythonConversion("dbf", "csv", pyDBFToCSV),

		// Database dumps via the sqlite3 CLI
		{
			Name:        "sqlite-to-sql",
			From:        "sqlite",
			To:          "sql",
			Tool:        "sqlite3",
			stdoutToOut: true,
			args: func(in, _ string) []string {
				return []string{in, ".dump"}
			},
		},
		{
			Name:        "sql-to-sqlite",
			From:        "sql",
			To:          "sqlite",
			Tool:        "sqlite3",
			stdinFromIn: true,
			args: func(_, out string) []string {
				return []string{out}
			},
		},
	}

	catalogue := make(map[string]*Conversion, len(conversions))
	for _, c := range conversions {
		catalogue[c.Name] = c
	}
	return catalogue
}

// Lookup finds a conversion by name.
func Lookup(name string) (*Conversion, error) {
	c, ok := Catalogue()[name]
	if !ok {
		return nil, fmt.Errorf("unknown conversion %q: run 'hooksmith convert list'", name)
	}
	return c, nil
}

// Names returns all conversion names in sorted order.
func Names() []string {
	catalogue := Catalogue()
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
