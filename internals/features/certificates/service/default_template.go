package service

// DefaultTemplateHTML is used when no template is marked default.
const DefaultTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Certificate of Completion</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: Georgia, 'Times New Roman', serif;
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    width: 297mm; height: 210mm; padding: 20mm;
    display: flex; align-items: center; justify-content: center;
  }
  .certificate {
    background: #fff; width: 100%; height: 100%; padding: 40px 60px;
    border: 15px solid #667eea; border-radius: 10px;
    display: flex; flex-direction: column; justify-content: space-between;
  }
  .header, .content { text-align: center; }
  .logo img { max-height: 70px; margin: 0 12px; }
  .title { font-size: 42px; font-weight: bold; color: #667eea; letter-spacing: 4px; text-transform: uppercase; }
  .subtitle { font-size: 20px; color: #555; font-style: italic; margin-top: 16px; }
  .name { font-size: 48px; font-weight: bold; color: #333; border-bottom: 3px solid #764ba2; display: inline-block; padding-bottom: 10px; margin-bottom: 24px; }
  .college { font-size: 18px; color: #555; margin-bottom: 16px; }
  .fdp { font-size: 24px; font-weight: bold; color: #667eea; margin: 12px 0; }
  .dates { font-size: 16px; color: #666; }
  .footer { display: flex; justify-content: space-between; align-items: flex-end; }
  .sign { text-align: center; flex: 1; }
  .sign img { max-height: 50px; }
  .sign .line { border-top: 2px solid #333; width: 200px; margin: 0 auto 8px; }
  .sign .label { font-size: 14px; color: #666; font-weight: bold; }
  .sign .value { font-size: 12px; color: #888; }
  .cert-id { font-size: 11px; color: #999; text-align: center; margin-top: 16px; }
</style>
</head>
<body>
<div class="certificate">
  <div class="header">
    <div class="logo"><img src="{{organiser_logo}}" alt=""><img src="{{college_logo}}" alt=""></div>
    <div class="title">Certificate of Completion</div>
    <div class="subtitle">This is to certify that</div>
  </div>
  <div class="content">
    <div class="name">{{participant_name}}</div>
    <div class="college">{{college_name}}</div>
    <div>has successfully completed the Faculty Development Program</div>
    <div class="fdp">{{fdp_title}}</div>
    <div class="dates">Conducted from {{start_date}} to {{end_date}}</div>
  </div>
  <div class="footer">
    <div class="sign">
      <img src="{{signature_image}}" alt="">
      <div class="line"></div>
      <div class="label">Program Director</div>
    </div>
    <div class="sign">
      <div class="line"></div>
      <div class="label">Issue Date</div>
      <div class="value">{{issue_date}}</div>
    </div>
  </div>
  <div class="cert-id">Certificate ID: {{certificate_id}}</div>
</div>
</body>
</html>`
