package services

import (
	"encoding/json"
	"mime/multipart"
	"sort"
	"strconv"
	"strings"
)

// The inspection API accepts two wire shapes: a JSON body carrying a literal
// list of item-response objects, and a multipart form using bracketed field
// names (item_responses[0][checklist_item], item_responses[0][photos][0][image]).
// Both are normalized into one canonical map before validation.

const responsePrefix = "item_responses["

// Recognized field names. Anything outside these sets is dropped silently;
// unrecognized extras are never a validation failure.
var (
	inspectionFields = map[string]bool{
		"assignment":       true,
		"vehicle":          true,
		"inspector":        true,
		"status":           true,
		"started_at":       true,
		"odometer_reading": true,
		"general_notes":    true,
		"item_responses":   true,
	}
	responseFields = map[string]bool{
		"checklist_item": true,
		"result":         true,
		"severity":       true,
		"notes":          true,
		"photos":         true,
	}
	photoFields = map[string]bool{
		"image":         true,
		"caption":       true,
		"is_local_file": true,
	}
)

type fieldPair struct {
	key    string
	values []interface{}
}

// NormalizeJSONPayload converts a decoded JSON body into the canonical payload shape.
func NormalizeJSONPayload(body map[string]interface{}) map[string]interface{} {
	pairs := make([]fieldPair, 0, len(body))
	for key, value := range body {
		if list, ok := value.([]interface{}); ok {
			pairs = append(pairs, fieldPair{key: key, values: list})
		} else {
			pairs = append(pairs, fieldPair{key: key, values: []interface{}{value}})
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
	return normalizePairs(pairs)
}

// NormalizeMultipartPayload converts a parsed multipart form, including its
// file parts, into the canonical payload shape. File headers flow through the
// same bracket-path assignment as text values so that a photo upload lands at
// its indexed position.
func NormalizeMultipartPayload(form *multipart.Form) map[string]interface{} {
	keys := make(map[string]bool)
	for key := range form.Value {
		keys[key] = true
	}
	for key := range form.File {
		keys[key] = true
	}

	ordered := make([]string, 0, len(keys))
	for key := range keys {
		ordered = append(ordered, key)
	}
	sort.Strings(ordered)

	pairs := make([]fieldPair, 0, len(ordered))
	for _, key := range ordered {
		var values []interface{}
		for _, v := range form.Value[key] {
			values = append(values, v)
		}
		for _, fh := range form.File[key] {
			values = append(values, fh)
		}
		if len(values) == 0 {
			continue
		}
		pairs = append(pairs, fieldPair{key: key, values: values})
	}
	return normalizePairs(pairs)
}

// SpareUploads returns the fallback pool of uploaded files for payload entries
// flagged is_local_file without an inline file part: everything sent under the
// generic "photos" key, or every file part when that key is unused.
func SpareUploads(form *multipart.Form) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	if files := form.File["photos"]; len(files) > 0 {
		return files
	}
	keys := make([]string, 0, len(form.File))
	for key := range form.File {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var files []*multipart.FileHeader
	for _, key := range keys {
		files = append(files, form.File[key]...)
	}
	return files
}

func normalizePairs(pairs []fieldPair) map[string]interface{} {
	base := map[string]interface{}{}
	nested := map[int]map[string]interface{}{}

	for _, pair := range pairs {
		if strings.HasPrefix(pair.key, responsePrefix) {
			assignNestedItem(nested, pair.key, pair.values)
			continue
		}
		if pair.key == "item_responses" && len(pair.values) == 1 {
			if raw, ok := pair.values[0].(string); ok {
				base[pair.key] = decodeResponsesJSON(raw)
				continue
			}
		}
		if len(pair.values) == 1 {
			base[pair.key] = pair.values[0]
		} else {
			base[pair.key] = pair.values
		}
	}

	if _, ok := base["item_responses"]; !ok {
		indices := make([]int, 0, len(nested))
		for index := range nested {
			indices = append(indices, index)
		}
		sort.Ints(indices)
		responses := make([]interface{}, 0, len(indices))
		for _, index := range indices {
			responses = append(responses, nested[index])
		}
		base["item_responses"] = responses
	} else {
		switch responses := base["item_responses"].(type) {
		case string:
			base["item_responses"] = decodeResponsesJSON(responses)
		case map[string]interface{}:
			// A source list with exactly one response arrives unwrapped as the
			// lone object; restore the list shape around it.
			base["item_responses"] = []interface{}{responses}
		case []interface{}:
			kept := make([]interface{}, 0, len(responses))
			for _, item := range responses {
				switch entry := item.(type) {
				case map[string]interface{}:
					kept = append(kept, entry)
				case string:
					// Best-effort decode of JSON-encoded entries; anything
					// non-decodable or non-object is discarded.
					var decoded map[string]interface{}
					if err := json.Unmarshal([]byte(entry), &decoded); err == nil {
						kept = append(kept, decoded)
					}
				}
			}
			base["item_responses"] = kept
		default:
			base["item_responses"] = []interface{}{}
		}
	}

	return filterPayload(base)
}

func decodeResponsesJSON(raw string) []interface{} {
	var decoded []interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return []interface{}{}
	}
	kept := make([]interface{}, 0, len(decoded))
	for _, item := range decoded {
		if entry, ok := item.(map[string]interface{}); ok {
			kept = append(kept, entry)
		}
	}
	return kept
}

// assignNestedItem routes one bracketed key into its response bucket.
// "item_responses[2][photos][0][image]" -> bucket 2, path [photos 0 image].
func assignNestedItem(buckets map[int]map[string]interface{}, key string, values []interface{}) {
	remainder := strings.TrimRight(key[len(responsePrefix):], "]")
	if remainder == "" {
		return
	}
	segments := strings.Split(remainder, "][")
	index, err := strconv.Atoi(segments[0])
	if err != nil {
		return
	}
	path := segments[1:]
	if len(path) == 0 {
		return
	}
	bucket, ok := buckets[index]
	if !ok {
		bucket = map[string]interface{}{}
		buckets[index] = bucket
	}
	assignPath(bucket, path, values)
}

// assignPath walks the bracket path, auto-vivifying intermediate containers.
// A numeric segment implies its parent is a sequence, anything else a mapping.
// Sequences are padded with nil placeholders so late-arriving higher indices
// keep their ordering. Returns the (possibly reallocated) container.
func assignPath(container interface{}, path []string, values []interface{}) interface{} {
	segment := path[0]
	isLast := len(path) == 1
	var value interface{}
	if len(values) > 1 {
		value = values
	} else {
		value = values[0]
	}

	switch c := container.(type) {
	case []interface{}:
		index, err := strconv.Atoi(segment)
		if err != nil {
			return c
		}
		for len(c) <= index {
			c = append(c, nil)
		}
		if isLast {
			c[index] = value
			return c
		}
		c[index] = assignPath(prepareChild(c[index], path[1]), path[1:], values)
		return c
	case map[string]interface{}:
		if isLast {
			c[segment] = value
			return c
		}
		c[segment] = assignPath(prepareChild(c[segment], path[1]), path[1:], values)
		return c
	}
	return container
}

// prepareChild replaces a child container whose shape does not match the next
// path segment (numeric wants a sequence, non-numeric wants a mapping).
func prepareChild(child interface{}, nextSegment string) interface{} {
	_, err := strconv.Atoi(nextSegment)
	wantList := err == nil
	if wantList {
		if list, ok := child.([]interface{}); ok {
			return list
		}
		return []interface{}{}
	}
	if m, ok := child.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

// filterPayload applies the allow-lists and coerces every photo entry into the
// uniform {image: <value>} shape. A photo may arrive as a file upload, a
// data-URI string, or a plain string path; persistence performs the decode.
func filterPayload(base map[string]interface{}) map[string]interface{} {
	filtered := map[string]interface{}{}
	for key, value := range base {
		if !inspectionFields[key] {
			continue
		}
		filtered[key] = value
	}

	responses, _ := filtered["item_responses"].([]interface{})
	keptResponses := make([]interface{}, 0, len(responses))
	for _, item := range responses {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		response := map[string]interface{}{}
		for key, value := range entry {
			if !responseFields[key] {
				continue
			}
			response[key] = value
		}
		if rawPhotos, ok := response["photos"]; ok {
			response["photos"] = normalizePhotoEntries(rawPhotos)
		}
		keptResponses = append(keptResponses, response)
	}
	filtered["item_responses"] = keptResponses
	return filtered
}

func normalizePhotoEntries(raw interface{}) []interface{} {
	var entries []interface{}
	switch photos := raw.(type) {
	case []interface{}:
		entries = photos
	case map[string]interface{}, string, *multipart.FileHeader:
		entries = []interface{}{photos}
	default:
		return []interface{}{}
	}

	normalized := make([]interface{}, 0, len(entries))
	for _, item := range entries {
		switch photo := item.(type) {
		case map[string]interface{}:
			kept := map[string]interface{}{}
			for key, value := range photo {
				if !photoFields[key] {
					continue
				}
				kept[key] = value
			}
			if kept["image"] == nil {
				if file, ok := photo["file"]; ok {
					kept["image"] = file
				}
			}
			if kept["image"] != nil || truthy(kept["is_local_file"]) {
				normalized = append(normalized, kept)
			}
		case string:
			normalized = append(normalized, map[string]interface{}{"image": photo})
		case *multipart.FileHeader:
			normalized = append(normalized, map[string]interface{}{"image": photo})
		}
	}
	return normalized
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		return v != 0
	}
	return false
}
