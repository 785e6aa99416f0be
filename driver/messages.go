package driver

const versionBanner = "==================Snova(Go)Deployer %s==================="

const emailQuestion = "Specify google email account first? (y/n, default n):"
const emailPrompt = "Email: "
const actionQuestion = "Enter your action?(0:update/1:rollback, default 0):"
const proxyQuestion = "Use local proxy(%s) for deploy? (y/n, default n):"
const appIDHint = "Enter appid, use ',' as separator if you have more than 1 appid."
const appIDPrompt = "AppID: "
const exitPrompt = "Enter to exit:"

const startBanner = "==============Start %s AppID:%s==============="
const endBanner = "==============End %s AppID:%s==============="

const invalidActionWarning = "[WARN]:Invalid action choice:%s, use default 'update' instead"
const noAppIDWarning = "[WARN]:No AppID entered, nothing to deploy"
const skippedAppIDsWarning = "[WARN]:Skipped AppID:%s"
const deployFailedError = "[ERROR]:Failed to %s AppID:%s, %s"
