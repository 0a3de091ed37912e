package guest

import "github.com/xeipuuv/gojsonschema"

// jobsSchema describes the stored guest blob. Records written before
// schema_version existed (v1) carry only the first five fields and still
// validate.
const jobsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "company", "status"],
    "properties": {
      "schema_version": {"type": "integer", "minimum": 1},
      "id":          {"type": "string", "minLength": 1},
      "title":       {"type": "string"},
      "company":     {"type": "string"},
      "status":      {"enum": ["Wishlist", "Applied", "Interview", "Offer", "Rejected"]},
      "deadline":    {"type": ["string", "null"], "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
      "applied_on":  {"type": ["string", "null"], "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
      "portal":      {"enum": ["Internshala", "Naukri", "LinkedIn", "Glassdoor", "Instahyre", "Indeed", null]},
      "status_link": {"type": ["string", "null"]},
      "created_at":  {"type": ["string", "null"]}
    }
  }
}`

var compiledSchema = mustCompile(jobsSchema)

func mustCompile(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(err)
	}
	return schema
}

func validBlob(blob []byte) bool {
	res, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(blob))
	return err == nil && res.Valid()
}
