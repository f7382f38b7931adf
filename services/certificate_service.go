package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/ftld/certforge/configs"
	"github.com/ftld/certforge/database"
	"github.com/ftld/certforge/models"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateCertificateAsset renders the branded certificate to PDF and stores
// it, then persists the asset URL on the row. It runs in its own goroutine
// after issuance: failures are logged and the certificate stays valid and
// verifiable without an asset.
func GenerateCertificateAsset(certificateID uuid.UUID) {
	if config.Config("CLOUDINARY_URL") == "" {
		log.Printf("Cloudinary not configured, skipping asset generation for certificate %s", certificateID)
		return
	}

	var certificate models.Certificate
	if err := database.DB.First(&certificate, "id = ?", certificateID).Error; err != nil {
		log.Printf("🔥 Certificate %s not found for asset generation: %v", certificateID, err)
		return
	}

	htmlData, err := renderCertificateHTML(certificate)
	if err != nil {
		log.Printf("🔥 Failed to render certificate HTML for %s: %v", certificate.VerificationCode, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF for %s: %v", certificate.VerificationCode, err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, certificate.VerificationCode)
	if err != nil {
		log.Printf("🔥 Failed to upload certificate %s: %v", certificate.VerificationCode, err)
		return
	}

	if err := database.DB.Model(&certificate).Update("certificate_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to save asset URL for %s: %v", certificate.VerificationCode, err)
		return
	}

	log.Printf("✅ Generated and uploaded certificate asset for %s.", certificate.VerificationCode)
}

func renderCertificateHTML(certificate models.Certificate) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	verifyURL := fmt.Sprintf("%s/verify?code=%s", config.Config("PUBLIC_BASE_URL"), certificate.VerificationCode)
	qrPNG, err := qrcode.Encode(verifyURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}

	completionDate := certificate.CompletionDate
	if parsed, err := time.Parse("2006-01-02", certificate.CompletionDate); err == nil {
		completionDate = parsed.Format("January 2, 2006")
	}

	data := struct {
		StudentName      string
		Program          string
		CompletionDate   string
		VerificationCode string
		VerifyURL        string
		QRCodeDataURI    template.URL
	}{
		StudentName:      certificate.StudentName,
		Program:          certificate.Program,
		CompletionDate:   completionDate,
		VerificationCode: certificate.VerificationCode,
		VerifyURL:        verifyURL,
		QRCodeDataURI:    template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPNG)),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, verificationCode string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s", verificationCode),
		Folder:       "certforge_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
