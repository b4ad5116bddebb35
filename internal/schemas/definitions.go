package schemas

// ResumeExtraction is the schema for skill extraction responses on resume text.
const ResumeExtraction = `{
  "type": "object",
  "required": ["technical_skills"],
  "properties": {
    "technical_skills": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "level"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "level": {"type": "string"},
          "years_experience": {"type": "number", "minimum": 0},
          "evidence": {"type": "string"},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "soft_skills": {"type": "array", "items": {"type": "string"}},
    "education": {"type": "array", "items": {"type": "string"}},
    "total_experience_years": {"type": "number", "minimum": 0}
  }
}`

// JobExtraction is the schema for skill extraction responses on job postings.
const JobExtraction = `{
  "type": "object",
  "required": ["required_skills"],
  "properties": {
    "required_skills": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "level", "importance"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "level": {"type": "string"},
          "category": {"type": "string"},
          "importance": {"type": "string"}
        }
      }
    },
    "preferred_skills": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "level": {"type": "string"},
          "category": {"type": "string"},
          "importance": {"type": "string"}
        }
      }
    },
    "required_experience_years": {"type": "number", "minimum": 0},
    "education_required": {"type": "string"}
  }
}`

// Normalization is the schema for skill normalization responses.
const Normalization = `{
  "type": "object",
  "required": ["normalized_skills"],
  "properties": {
    "normalized_skills": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["original", "canonical", "confidence"],
        "properties": {
          "original": {"type": "string", "minLength": 1},
          "canonical": {"type": "string", "minLength": 1},
          "category": {"type": "string"},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "aliases": {"type": "array", "items": {"type": "string"}},
          "related_skills": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`
