package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"

	"supplier-onboarding-be/internal/entity"
	"supplier-onboarding-be/pkg/intake"
	"supplier-onboarding-be/pkg/pipeline"
)

//go:embed templates/*.html
var templateFS embed.FS

var submissionTemplate = template.Must(template.New("submission.html").Funcs(template.FuncMap{
	"formatDate": func(t time.Time, layout string) string {
		return t.Format(layout)
	},
}).ParseFS(templateFS, "templates/submission.html"))

type Row struct {
	Label string
	Value string
}

type SectionData struct {
	Title string
	Rows  []Row
}

type DocumentData struct {
	Label    string
	Name     string
	MimeType string
	Size     string
}

type DecisionData struct {
	Stage   string
	Outcome string
	Rows    []Row
}

type TemplateData struct {
	Title          string
	SubmissionId   string
	CompanyName    string
	SubmittedBy    string
	SubmissionDate time.Time
	StatusLabel    string
	StageLabel     string
	Sections       []SectionData
	Documents      []DocumentData
	Decisions      []DecisionData
}

// BuildTemplateData flattens rec into what the page shows. Document content
// is never included.
func BuildTemplateData(rec *entity.Submission) TemplateData {
	company := rec.FormData.String(intake.FieldCompanyName)
	if company == "" {
		company = "Unnamed supplier"
	}
	data := TemplateData{
		Title:          fmt.Sprintf("Supplier onboarding - %s", company),
		SubmissionId:   rec.SubmissionId,
		CompanyName:    company,
		SubmittedBy:    rec.SubmittedBy,
		SubmissionDate: rec.SubmissionDate,
		StatusLabel:    humanize(string(rec.Status)),
		StageLabel:     pipeline.CurrentStage(rec).Label(),
	}

	for _, section := range intake.AllSections() {
		var rows []Row
		for _, key := range intake.SectionFields(section) {
			value, ok := rec.FormData[key]
			if !ok || value == nil {
				continue
			}
			rows = append(rows, Row{Label: humanize(key), Value: formatValue(value)})
		}
		if len(rows) > 0 {
			data.Sections = append(data.Sections, SectionData{Title: section.Title(), Rows: rows})
		}
	}

	for _, slot := range documentOrder {
		doc, ok := rec.UploadedFiles[slot]
		if !ok {
			continue
		}
		data.Documents = append(data.Documents, documentData(slot.Label(), doc))
	}
	if rec.ContractDrafter != nil {
		data.Documents = append(data.Documents, documentData(intake.SlotContract.Label(), rec.ContractDrafter.Contract))
	}

	data.Decisions = decisions(rec)
	return data
}

var documentOrder = []intake.Slot{
	intake.SlotLetterhead,
	intake.SlotProcurementApproval,
	intake.SlotCESTForm,
	intake.SlotPassportPhoto,
	intake.SlotLicenceFront,
	intake.SlotLicenceBack,
	intake.SlotOPWContract,
}

func documentData(label string, doc intake.Document) DocumentData {
	return DocumentData{
		Label:    label,
		Name:     doc.Name,
		MimeType: doc.MimeType,
		Size:     formatSize(doc.SizeBytes),
	}
}

func decisions(rec *entity.Submission) []DecisionData {
	var out []DecisionData
	review := func(stage pipeline.Stage, d entity.ReviewDecision, extra ...Row) {
		rows := []Row{
			{Label: "Signed by", Value: d.SignerName},
			{Label: "Signed on", Value: d.SignedDate},
		}
		if d.Comments != "" {
			rows = append(rows, Row{Label: "Comments", Value: d.Comments})
		}
		rows = append(rows, extra...)
		out = append(out, DecisionData{Stage: stage.Label(), Outcome: humanize(string(d.Decision)), Rows: rows})
	}

	if rec.PBPReview != nil {
		review(pipeline.StagePBPReview, *rec.PBPReview)
	}
	if p := rec.ProcurementReview; p != nil {
		var extra []Row
		if p.Classification != "" {
			extra = append(extra, Row{Label: "Classification", Value: humanize(string(p.Classification))})
		}
		if p.Reference != "" {
			extra = append(extra, Row{Label: "Reference", Value: p.Reference})
		}
		review(pipeline.StageProcurementReview, p.ReviewDecision, extra...)
	}
	if o := rec.OPWReview; o != nil {
		review(pipeline.StageOPWReview, o.ReviewDecision,
			Row{Label: "IR35 status", Value: humanize(string(o.IR35Status))},
			Row{Label: "Rationale", Value: o.Rationale},
		)
	}
	if c := rec.ContractDrafter; c != nil {
		out = append(out, DecisionData{
			Stage:   pipeline.StageContractUpload.Label(),
			Outcome: "Uploaded",
			Rows: []Row{
				{Label: "Uploaded by", Value: c.UploadedBy},
				{Label: "Contract date", Value: c.Date},
			},
		})
	}
	if a := rec.APReview; a != nil {
		extra := []Row{
			{Label: "Bank details verified", Value: yesNo(a.BankDetailsVerified)},
			{Label: "Company details verified", Value: yesNo(a.CompanyDetailsVerified)},
			{Label: "VAT verified", Value: yesNo(a.VATVerified)},
			{Label: "Insurance verified", Value: yesNo(a.InsuranceVerified)},
		}
		if a.SupplierNumber != "" {
			extra = append(extra, Row{Label: "Supplier number", Value: a.SupplierNumber})
		}
		review(pipeline.StageAPReview, a.ReviewDecision, extra...)
	}
	return out
}

// RenderSubmissionHTML renders the printable page for rec.
func RenderSubmissionHTML(rec *entity.Submission) (string, error) {
	var buf bytes.Buffer
	if err := submissionTemplate.Execute(&buf, BuildTemplateData(rec)); err != nil {
		return "", fmt.Errorf("render submission: %w", err)
	}
	return buf.String(), nil
}

// humanize turns "companyName" or "pending_review" into "Company name" and
// "Pending review".
func humanize(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		if enumValues[v] {
			return humanize(v)
		}
		return v
	case bool:
		return yesNo(v)
	case float64:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	default:
		return fmt.Sprint(v)
	}
}

var enumValues = map[string]bool{
	intake.Yes: true, intake.No: true,
	intake.UsageOneOff: true, intake.UsageOccasional: true, intake.UsageRegular: true,
	intake.CategoryClinical: true, intake.CategoryNonClinical: true,
	intake.SupplierLimitedCompany: true, intake.SupplierSoleTrader: true, intake.SupplierPartnership: true,
	intake.SupplierCharity: true, intake.SupplierPublicSector: true,
	intake.IDPassport: true, intake.IDDrivingLicence: true,
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
