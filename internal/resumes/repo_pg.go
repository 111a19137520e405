package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements ResumesRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// StoreAnalysis inserts the resume row and all child rows in one transaction.
func (r *PGRepo) StoreAnalysis(ctx context.Context, userID int64, fileName string, result AnalysisResult) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var resumeID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO resumes (user_id, file_name, ats_score) VALUES ($1, $2, $3) RETURNING resume_id`,
		userID, fileName, result.ATSScore,
	).Scan(&resumeID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert resume: %w", err)
	}

	if pi := result.PersonalInformation; pi != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO personal_information (resume_id, name, email, phone, github, linkedin) VALUES ($1, $2, $3, $4, $5, $6)`,
			resumeID, pi.Name, pi.Email, pi.Phone, pi.Github, pi.Linkedin,
		)
		if err != nil {
			return 0, fmt.Errorf("insert personal information: %w", err)
		}
	}

	if result.ProfessionalSummary != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO professional_summary (resume_id, summary_text) VALUES ($1, $2)`,
			resumeID, result.ProfessionalSummary,
		)
		if err != nil {
			return 0, fmt.Errorf("insert summary: %w", err)
		}
	}

	for _, edu := range result.Education {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO education (resume_id, institution, degree, location, duration, grade) VALUES ($1, $2, $3, $4, $5, $6)`,
			resumeID, edu.Institution, edu.Degree, edu.Location, edu.Duration, edu.Grade,
		)
		if err != nil {
			return 0, fmt.Errorf("insert education: %w", err)
		}
	}

	for _, proj := range result.Projects {
		var projectID int64
		err = tx.QueryRowContext(ctx,
			`INSERT INTO projects (resume_id, title, tech_stack, duration) VALUES ($1, $2, $3, $4) RETURNING project_id`,
			resumeID, proj.Title, proj.TechStack, proj.Duration,
		).Scan(&projectID)
		if err != nil {
			return 0, fmt.Errorf("insert project: %w", err)
		}
		for _, bullet := range proj.Bullets {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO project_bullets (project_id, bullet_text) VALUES ($1, $2)`,
				projectID, bullet,
			)
			if err != nil {
				return 0, fmt.Errorf("insert project bullet: %w", err)
			}
		}
	}

	for _, exp := range result.Experience {
		var experienceID int64
		err = tx.QueryRowContext(ctx,
			`INSERT INTO experience (resume_id, company, role, location, duration) VALUES ($1, $2, $3, $4, $5) RETURNING experience_id`,
			resumeID, exp.Company, exp.Role, exp.Location, exp.Duration,
		).Scan(&experienceID)
		if err != nil {
			return 0, fmt.Errorf("insert experience: %w", err)
		}
		for _, bullet := range exp.Bullets {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO experience_bullets (experience_id, bullet_text) VALUES ($1, $2)`,
				experienceID, bullet,
			)
			if err != nil {
				return 0, fmt.Errorf("insert experience bullet: %w", err)
			}
		}
	}

	skillGroups := []struct {
		skillType string
		names     []string
	}{
		{"language", result.TechnicalSkills.Languages},
		{"framework", result.TechnicalSkills.Frameworks},
		{"tool", result.TechnicalSkills.Tools},
		{"ide", result.TechnicalSkills.IDEs},
	}
	for _, group := range skillGroups {
		for _, name := range group.names {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO technical_skills (resume_id, skill_type, skill_name) VALUES ($1, $2, $3)`,
				resumeID, group.skillType, name,
			)
			if err != nil {
				return 0, fmt.Errorf("insert technical skill: %w", err)
			}
		}
	}

	for _, course := range result.Coursework {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO coursework (resume_id, course_name) VALUES ($1, $2)`,
			resumeID, course,
		)
		if err != nil {
			return 0, fmt.Errorf("insert coursework: %w", err)
		}
	}

	for _, cert := range result.Certifications {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO certifications (resume_id, cert_name) VALUES ($1, $2)`,
			resumeID, cert,
		)
		if err != nil {
			return 0, fmt.Errorf("insert certification: %w", err)
		}
	}

	for _, skill := range result.JobSkills {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO job_skills (resume_id, skill_name) VALUES ($1, $2)`,
			resumeID, skill,
		)
		if err != nil {
			return 0, fmt.Errorf("insert job skill: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO analysis_history (resume_id, job_description, match_percentage) VALUES ($1, $2, $3)`,
		resumeID, result.JobDescription, result.MatchPercentage,
	)
	if err != nil {
		return 0, fmt.Errorf("insert analysis history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return resumeID, nil
}

// CheckResumeExists looks up a resume by (user, file name).
func (r *PGRepo) CheckResumeExists(ctx context.Context, userID int64, fileName string) (int64, bool, error) {
	var resumeID int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT resume_id FROM resumes WHERE user_id = $1 AND file_name = $2 LIMIT 1`,
		userID, fileName,
	).Scan(&resumeID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return resumeID, true, nil
}

// GetUserResumes lists a user's resumes newest-first with each one's most
// recent match percentage.
func (r *PGRepo) GetUserResumes(ctx context.Context, userID int64) ([]ResumeSummary, error) {
	const query = `
SELECT r.resume_id, r.file_name, r.ats_score, r.upload_date,
       COALESCE((
           SELECT h.match_percentage
           FROM analysis_history h
           WHERE h.resume_id = r.resume_id
           ORDER BY h.analysis_date DESC, h.id DESC
           LIMIT 1
       ), 0) AS latest_match_percentage
FROM resumes r
WHERE r.user_id = $1
ORDER BY r.upload_date DESC, r.resume_id DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ResumeSummary{}
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ResumeID, &s.FileName, &s.ATSScore, &s.UploadDate, &s.LatestMatchPercentage); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetResumeHistory returns a resume's analysis runs, most recent first.
func (r *PGRepo) GetResumeHistory(ctx context.Context, resumeID int64) ([]HistoryEntry, error) {
	const query = `
SELECT id, resume_id, job_description, match_percentage, analysis_date
FROM analysis_history
WHERE resume_id = $1
ORDER BY analysis_date DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []HistoryEntry{}
	for rows.Next() {
		var h HistoryEntry
		var jobDescription sql.NullString
		if err := rows.Scan(&h.ID, &h.ResumeID, &jobDescription, &h.MatchPercentage, &h.AnalysisDate); err != nil {
			return nil, err
		}
		h.JobDescription = jobDescription.String
		out = append(out, h)
	}
	return out, rows.Err()
}

// DeleteResume removes the resume and all child rows, grandchildren first.
func (r *PGRepo) DeleteResume(ctx context.Context, resumeID int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	childDeletes := []string{
		`DELETE FROM project_bullets WHERE project_id IN (SELECT project_id FROM projects WHERE resume_id = $1)`,
		`DELETE FROM experience_bullets WHERE experience_id IN (SELECT experience_id FROM experience WHERE resume_id = $1)`,
		`DELETE FROM projects WHERE resume_id = $1`,
		`DELETE FROM experience WHERE resume_id = $1`,
		`DELETE FROM technical_skills WHERE resume_id = $1`,
		`DELETE FROM coursework WHERE resume_id = $1`,
		`DELETE FROM certifications WHERE resume_id = $1`,
		`DELETE FROM job_skills WHERE resume_id = $1`,
		`DELETE FROM personal_information WHERE resume_id = $1`,
		`DELETE FROM professional_summary WHERE resume_id = $1`,
		`DELETE FROM analysis_history WHERE resume_id = $1`,
	}
	for _, stmt := range childDeletes {
		if _, err := tx.ExecContext(ctx, stmt, resumeID); err != nil {
			return fmt.Errorf("delete children: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM resumes WHERE resume_id = $1`, resumeID)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

var _ ResumesRepo = (*PGRepo)(nil)
