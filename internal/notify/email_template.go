package notify

const digestHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Corporate Actions – {{.GeneratedAt.Format "02 Jan 2006"}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }
    .container {
      max-width: 720px;
      margin: 0 auto;
      background: #ffffff;
      border: 1px solid #e5e7eb;
      border-radius: 8px;
      overflow: hidden;
    }
    .header { padding: 20px 24px; background: #1f2937; color: #ffffff; }
    .header h1 { margin: 0; font-size: 20px; }
    .header .range { font-size: 13px; opacity: 0.8; }
    .company { padding: 16px 24px; border-top: 1px solid #e5e7eb; }
    .company h2 { margin: 0 0 8px; font-size: 16px; }
    .code { color: #6b7280; font-weight: normal; }
    .warning { padding: 8px 12px; background: #fef3c7; border-radius: 4px; font-size: 13px; }
    table { width: 100%; border-collapse: collapse; font-size: 13px; }
    th { text-align: left; color: #6b7280; font-weight: 600; padding: 4px 8px 4px 0; }
    td { padding: 4px 8px 4px 0; vertical-align: top; border-top: 1px solid #f3f4f6; }
    td.date { white-space: nowrap; }
    .summary { margin-top: 12px; font-size: 13px; }
    .category { display: inline-block; padding: 1px 6px; margin-right: 6px; background: #e0e7ff; border-radius: 3px; font-size: 11px; }
    .footer { padding: 12px 24px; font-size: 11px; color: #9ca3af; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Corporate Actions</h1>
      <div class="range">{{.GeneratedAt.Format "02 Jan 2006"}} · {{.Total}} announcement(s) · range {{.Range}}</div>
    </div>

    {{range .Companies}}
    <div class="company">
      <h2>{{.Company.Name}} <span class="code">{{.Company.Code}}</span></h2>
      {{if .Warning}}<div class="warning">{{.Warning}}</div>{{end}}
      {{if .Records}}
      <table>
        <tr><th>Date</th><th>Description</th><th></th></tr>
        {{range .Records}}
        <tr>
          <td class="date">{{.Date}}</td>
          <td>{{.Description}}</td>
          <td>{{if .AttachmentURL}}<a href="{{.AttachmentURL}}" target="_blank" rel="noopener">PDF</a>{{end}}</td>
        </tr>
        {{end}}
      </table>
      {{else}}{{if not .Warning}}<div>No announcements.</div>{{end}}{{end}}

      {{if .Analysis}}
      <div class="summary">
        {{if .Analysis.Summary}}
        <strong>AI Summary</strong>
        <ul>{{range .Analysis.Summary}}<li>{{.}}</li>{{end}}</ul>
        {{end}}
        {{if .Analysis.Actions}}
        <strong>Corporate Actions</strong>
        <ul>{{range .Analysis.Actions}}<li><span class="category">{{.Category}}</span>{{.Details}}</li>{{end}}</ul>
        {{end}}
      </div>
      {{end}}
    </div>
    {{end}}

    <div class="footer">Generated by corpactions</div>
  </div>
</body>
</html>`
