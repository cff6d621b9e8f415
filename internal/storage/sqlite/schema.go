// ABOUTME: SQLite schema for the pediatric reference database
// ABOUTME: One table per entity; JSON columns as TEXT, decimals as TEXT, vectors as BLOB
package sqlite

// Schema contains all SQL statements for database initialization.
// Fixed-point columns are TEXT so declared decimal precision survives
// round-trips. Cascade deletes are declared on the three owning edges.
const Schema = `
-- User accounts
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    full_name TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'student',
    institution TEXT,
    specialty TEXT,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL,
    last_login DATETIME,
    preferences TEXT NOT NULL DEFAULT '{}'
);

-- Chat sessions (owned by users)
CREATE TABLE IF NOT EXISTS chat_sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id),
    title TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    is_archived INTEGER NOT NULL DEFAULT 0,
    session_metadata TEXT NOT NULL DEFAULT '{}'
);

-- Messages (cascade with their session; insertion order = conversation order)
CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chat_session_id INTEGER NOT NULL REFERENCES chat_sessions(id) ON DELETE CASCADE,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    token_count INTEGER,
    processing_time TEXT,
    citations TEXT NOT NULL DEFAULT '[]',
    source_chunks TEXT NOT NULL DEFAULT '[]',
    message_metadata TEXT NOT NULL DEFAULT '{}'
);

-- Nelson textbook chapters
CREATE TABLE IF NOT EXISTS nelson_chapters (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chapter_number INTEGER NOT NULL,
    title TEXT NOT NULL,
    authors TEXT NOT NULL DEFAULT '[]',
    edition TEXT NOT NULL DEFAULT '22nd',
    page_start INTEGER,
    page_end INTEGER,
    keywords TEXT NOT NULL DEFAULT '[]',
    summary TEXT,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

-- Retrieval chunks (cascade with their chapter)
CREATE TABLE IF NOT EXISTS nelson_chunks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chapter_id INTEGER NOT NULL REFERENCES nelson_chapters(id) ON DELETE CASCADE,
    content TEXT NOT NULL,
    chunk_index INTEGER NOT NULL DEFAULT 0,
    token_count INTEGER NOT NULL DEFAULT 0,
    embedding BLOB,
    page_numbers TEXT NOT NULL DEFAULT '[]',
    section_title TEXT,
    subsection_title TEXT,
    created_at DATETIME NOT NULL
);

-- Drug monographs
CREATE TABLE IF NOT EXISTS pediatric_drugs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    generic_name TEXT NOT NULL,
    brand_names TEXT NOT NULL DEFAULT '[]',
    drug_class TEXT NOT NULL,
    indications TEXT NOT NULL DEFAULT '[]',
    contraindications TEXT NOT NULL DEFAULT '[]',
    warnings TEXT NOT NULL DEFAULT '[]',
    min_age_months INTEGER,
    max_age_months INTEGER,
    min_weight_kg TEXT,
    max_weight_kg TEXT,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

-- Dosing rules (cascade with their drug)
CREATE TABLE IF NOT EXISTS drug_dosages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    drug_id INTEGER NOT NULL REFERENCES pediatric_drugs(id) ON DELETE CASCADE,
    indication TEXT NOT NULL,
    route TEXT NOT NULL,
    dose_amount TEXT NOT NULL,
    dose_unit TEXT NOT NULL,
    frequency TEXT NOT NULL,
    max_daily_dose TEXT,
    max_single_dose TEXT,
    min_age_months INTEGER,
    max_age_months INTEGER,
    min_weight_kg TEXT,
    max_weight_kg TEXT,
    administration_notes TEXT,
    monitoring_requirements TEXT NOT NULL DEFAULT '[]'
);

-- Emergency protocols (standalone)
CREATE TABLE IF NOT EXISTS emergency_protocols (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    protocol_type TEXT NOT NULL,
    age_group TEXT NOT NULL,
    keywords TEXT NOT NULL DEFAULT '[]',
    overview TEXT NOT NULL,
    steps TEXT NOT NULL DEFAULT '[]',
    medications TEXT NOT NULL DEFAULT '[]',
    equipment TEXT NOT NULL DEFAULT '[]',
    warning_signs TEXT NOT NULL DEFAULT '[]',
    contraindications TEXT NOT NULL DEFAULT '[]',
    when_to_call_help TEXT NOT NULL DEFAULT '[]',
    priority_level INTEGER NOT NULL DEFAULT 1,
    last_reviewed DATETIME,
    source_references TEXT NOT NULL DEFAULT '[]',
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

-- Developmental milestones (standalone)
CREATE TABLE IF NOT EXISTS developmental_milestones (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    age_months INTEGER NOT NULL,
    domain TEXT NOT NULL,
    milestone_text TEXT NOT NULL,
    description TEXT,
    typical_age_range_start INTEGER NOT NULL,
    typical_age_range_end INTEGER NOT NULL,
    red_flag_age INTEGER,
    assessment_method TEXT,
    parent_report_acceptable INTEGER NOT NULL DEFAULT 1,
    requires_observation INTEGER NOT NULL DEFAULT 0,
    source_references TEXT NOT NULL DEFAULT '[]',
    clinical_notes TEXT,
    created_at DATETIME NOT NULL
);

-- Growth charts (standalone; percentile curves as JSON)
CREATE TABLE IF NOT EXISTS growth_charts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chart_type TEXT NOT NULL,
    sex TEXT NOT NULL,
    age_range_start INTEGER NOT NULL DEFAULT 0,
    age_range_end INTEGER NOT NULL DEFAULT 240,
    percentile_data TEXT NOT NULL DEFAULT '{}',
    source TEXT NOT NULL DEFAULT 'WHO/CDC',
    version TEXT NOT NULL DEFAULT '2000',
    last_updated DATETIME,
    created_at DATETIME NOT NULL
);

-- Symptoms (standalone)
CREATE TABLE IF NOT EXISTS symptoms (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    synonyms TEXT NOT NULL DEFAULT '[]',
    category TEXT NOT NULL,
    description TEXT,
    common_age_groups TEXT NOT NULL DEFAULT '[]',
    red_flags TEXT NOT NULL DEFAULT '[]',
    common_diagnoses TEXT NOT NULL DEFAULT '[]',
    urgent_diagnoses TEXT NOT NULL DEFAULT '[]',
    assessment_questions TEXT NOT NULL DEFAULT '[]',
    physical_exam_findings TEXT NOT NULL DEFAULT '[]',
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

-- Search query log (user is optional; kept when the user is deleted)
CREATE TABLE IF NOT EXISTS search_queries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
    query_text TEXT NOT NULL,
    query_type TEXT NOT NULL,
    results_count INTEGER NOT NULL DEFAULT 0,
    context_data TEXT NOT NULL DEFAULT '{}',
    response_time TEXT,
    created_at DATETIME NOT NULL
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_sessions_user ON chat_sessions(user_id);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(chat_session_id);
CREATE INDEX IF NOT EXISTS idx_chunks_chapter ON nelson_chunks(chapter_id, chunk_index);
CREATE INDEX IF NOT EXISTS idx_drugs_name ON pediatric_drugs(generic_name COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_dosages_drug ON drug_dosages(drug_id);
CREATE INDEX IF NOT EXISTS idx_protocols_type ON emergency_protocols(protocol_type);
CREATE INDEX IF NOT EXISTS idx_milestones_age ON developmental_milestones(age_months);
CREATE INDEX IF NOT EXISTS idx_milestones_domain ON developmental_milestones(domain);
CREATE INDEX IF NOT EXISTS idx_charts_type_sex ON growth_charts(chart_type, sex);
CREATE INDEX IF NOT EXISTS idx_symptoms_name ON symptoms(name COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_queries_user ON search_queries(user_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
