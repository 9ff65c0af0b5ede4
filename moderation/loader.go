package moderation

import (
	"bufio"
	"bytes"
	"io/fs"
	"path"
	"strings"

	"github.com/samber/lo"
)

// Dictionary is the censored word list, merged from every language file.
type Dictionary struct {
	Words     []string
	Languages []string
}

// LoadDictionary reads every "<lang>.txt" file of dir, one word per line.
func LoadDictionary(fsys fs.FS, dir string) (Dictionary, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return Dictionary{}, err
	}

	var dictionary Dictionary
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		dictionary.Languages = append(dictionary.Languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return Dictionary{}, err
		}
		// Scanner copes with both \n and \r\n
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				dictionary.Words = append(dictionary.Words, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return Dictionary{}, err
		}
	}
	dictionary.Words = lo.Uniq(dictionary.Words)
	return dictionary, nil
}
